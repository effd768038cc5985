package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/tim0git/timdevs-contact-me-store-message/internal/domain"
)

// dynamodbAPI is the minimal DynamoDB interface required by Client.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Client wraps a DynamoDB table for contact-message rows. The table's
// composite key is (id, email) and expires_at is its TTL attribute.
type Client struct {
	api       dynamodbAPI
	tableName string
	log       *slog.Logger
}

// New creates a new repository Client.
func New(api dynamodbAPI, tableName string, log *slog.Logger) (*Client, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	if log == nil {
		return nil, errors.New("repository: logger must not be nil")
	}
	return &Client{api: api, tableName: tableName, log: log}, nil
}

// PutMessage writes one message row. There is no read, update or delete
// path; expiry is the table's job via the expires_at attribute.
func (c *Client) PutMessage(ctx context.Context, msg domain.StoredMessage) error {
	if msg.ID == "" {
		return errors.New("repository: PutMessage: id is required")
	}

	_, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      messageItem(msg),
	})
	if err != nil {
		return fmt.Errorf("repository: PutMessage: %w", err)
	}

	c.log.InfoContext(ctx, "message written to table", "table", c.tableName)
	return nil
}

func messageItem(msg domain.StoredMessage) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: msg.ID},
		"email":      &types.AttributeValueMemberS{Value: msg.Email},
		"name":       &types.AttributeValueMemberS{Value: msg.Name},
		"message":    &types.AttributeValueMemberS{Value: msg.Message},
		"expires_at": &types.AttributeValueMemberN{Value: strconv.FormatInt(msg.ExpiresAt, 10)},
	}
}
