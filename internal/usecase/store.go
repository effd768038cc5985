package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tim0git/timdevs-contact-me-store-message/internal/domain"
)

// messageRetention is how long a stored message survives before the
// table's TTL mechanism expires it.
const messageRetention = 30 * 24 * time.Hour

var requiredFields = []string{"name", "email", "message"}

// MessageWriter persists one message row.
type MessageWriter interface {
	PutMessage(ctx context.Context, msg domain.StoredMessage) error
}

// StoreService parses, validates, enriches and persists a raw message
// payload. It holds no per-invocation state.
type StoreService struct {
	writer MessageWriter
	log    *slog.Logger
	tracer trace.Tracer
}

func NewStoreService(writer MessageWriter, log *slog.Logger, tracer trace.Tracer) (*StoreService, error) {
	if writer == nil {
		return nil, errors.New("usecase: message writer must not be nil")
	}
	if log == nil {
		return nil, errors.New("usecase: logger must not be nil")
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &StoreService{writer: writer, log: log, tracer: tracer}, nil
}

// Store runs the full pipeline for one payload. The write is attempted
// only after validation has fully succeeded, so a failure never leaves a
// partial row behind.
func (s *StoreService) Store(ctx context.Context, payload string) error {
	msg, err := parseMessage(payload)
	if err != nil {
		return err
	}

	stored := domain.StoredMessage{
		ID:        newUUID(),
		Email:     msg.Email,
		Name:      msg.Name,
		Message:   msg.Message,
		ExpiresAt: timeNow().Add(messageRetention).Unix(),
	}

	ctx, span := s.tracer.Start(ctx, "PutMessage")
	defer span.End()
	if err := s.writer.PutMessage(ctx, stored); err != nil {
		return newError(ErrorStore, "dynamodb_write_error", err)
	}

	s.log.InfoContext(ctx, "message stored", "id", stored.ID)
	return nil
}

// parseMessage decodes the payload and checks the three required fields
// are present and string-typed before anything touches the store.
func parseMessage(payload string) (domain.ContactMessage, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return domain.ContactMessage{}, newError(ErrorParse, "malformed_payload", err)
	}

	values := make(map[string]string, len(requiredFields))
	for _, name := range requiredFields {
		v, ok := fields[name]
		if !ok {
			return domain.ContactMessage{}, newMissingFieldError(name)
		}
		str, ok := v.(string)
		if !ok {
			return domain.ContactMessage{}, newWrongTypeError(name, jsonTypeName(v))
		}
		values[name] = str
	}

	return domain.ContactMessage{
		Name:    values["name"],
		Email:   values["email"],
		Message: values["message"],
	}, nil
}

// jsonTypeName reports the JSON type of a value decoded into any.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

var newUUID = func() string {
	return uuid.NewString()
}

var timeNow = time.Now
