package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"github.com/tim0git/timdevs-contact-me-store-message/internal/domain"
)

type fakeDynamo struct {
	putErr       error
	putCalls     int
	lastPutInput *dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putCalls++
	f.lastPutInput = in
	return &dynamodb.PutItemOutput{}, f.putErr
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustNewClient(t *testing.T, db *fakeDynamo) *Client {
	t.Helper()
	c, err := New(db, "test-table", testLogger())
	require.NoError(t, err)
	return c
}

func strAttr(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	require.True(t, ok, "attribute %q is not a string", key)
	return v.Value
}

func TestNew_ValidatesDependencies(t *testing.T) {
	_, err := New(nil, "test-table", testLogger())
	require.Error(t, err)

	_, err = New(&fakeDynamo{}, "  ", testLogger())
	require.Error(t, err)

	_, err = New(&fakeDynamo{}, "test-table", nil)
	require.Error(t, err)
}

func TestPutMessage_HappyPath(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	err := c.PutMessage(context.Background(), domain.StoredMessage{
		ID:        "8c3f9e1a-0b6d-4c2f-9a7e-5d1b2c3d4e5f",
		Email:     "ada@example.com",
		Name:      "Ada Lovelace",
		Message:   "Hello, Tim!",
		ExpiresAt: 1773480413,
	})
	require.NoError(t, err)
	require.NotNil(t, db.lastPutInput)
	require.Equal(t, "test-table", *db.lastPutInput.TableName)

	item := db.lastPutInput.Item
	require.Equal(t, "8c3f9e1a-0b6d-4c2f-9a7e-5d1b2c3d4e5f", strAttr(t, item, "id"))
	require.Equal(t, "ada@example.com", strAttr(t, item, "email"))
	require.Equal(t, "Ada Lovelace", strAttr(t, item, "name"))
	require.Equal(t, "Hello, Tim!", strAttr(t, item, "message"))

	ttl, ok := item["expires_at"].(*types.AttributeValueMemberN)
	require.True(t, ok, "expires_at is not a number")
	require.Equal(t, "1773480413", ttl.Value)
}

func TestPutMessage_MissingID(t *testing.T) {
	db := &fakeDynamo{}
	c := mustNewClient(t, db)

	err := c.PutMessage(context.Background(), domain.StoredMessage{Email: "ada@example.com"})
	require.Error(t, err)
	require.Zero(t, db.putCalls)
}

func TestPutMessage_BackendError(t *testing.T) {
	cause := errors.New("ResourceNotFoundException")
	db := &fakeDynamo{putErr: cause}
	c := mustNewClient(t, db)

	err := c.PutMessage(context.Background(), domain.StoredMessage{ID: "id-1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "PutMessage")
	require.ErrorIs(t, err, cause)
}
