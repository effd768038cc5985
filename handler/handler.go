package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/tim0git/timdevs-contact-me-store-message/internal/observability"
	"github.com/tim0git/timdevs-contact-me-store-message/internal/usecase"
)

// Fixed response bodies for direct-style invocations. The caller never
// learns which error kind occurred; that lives in the log only.
const (
	successBody = `{"message": "success"}`
	errorBody   = `{"message": "error"}`
)

type invocationStyle int

const (
	styleDirect invocationStyle = iota
	styleQueue
)

// MessageStorer is the store pipeline consumed by the handler.
type MessageStorer interface {
	Store(ctx context.Context, payload string) error
}

// Handler decodes an invocation event and maps the pipeline outcome to
// the contract of whichever invocation style delivered it.
type Handler struct {
	store   MessageStorer
	log     *slog.Logger
	metrics *observability.Metrics
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(store MessageStorer, log *slog.Logger, metrics *observability.Metrics) (*Handler, error) {
	if store == nil {
		return nil, errors.New("handler: message storer must not be nil")
	}
	if log == nil {
		return nil, errors.New("handler: logger must not be nil")
	}
	return &Handler{store: store, log: log, metrics: metrics}, nil
}

// invocationEvent probes the two recognized event shapes: a direct
// invocation carrying body at the top level, and an SQS delivery carrying
// a record batch.
type invocationEvent struct {
	Body    *string `json:"body"`
	Records []struct {
		Body string `json:"body"`
	} `json:"Records"`
}

// decodeEvent extracts the raw message payload. For a queue delivery only
// the first record is consumed; redelivery of the rest is the event
// source's problem under its batching semantics.
func decodeEvent(raw json.RawMessage) (string, invocationStyle, error) {
	var event invocationEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return "", 0, &usecase.Error{Code: usecase.ErrorDecode, Reason: "unrecognized_event_shape", Err: err}
	}
	if event.Body != nil {
		return *event.Body, styleDirect, nil
	}
	if len(event.Records) > 0 {
		return event.Records[0].Body, styleQueue, nil
	}
	return "", 0, &usecase.Error{Code: usecase.ErrorDecode, Reason: "unrecognized_event_shape"}
}

// Handle processes one invocation. Direct style always answers with a
// response object, 200 or 500. Queue style returns an error on failure so
// the event source redelivers, and nothing on success.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (*events.APIGatewayProxyResponse, error) {
	h.log.InfoContext(ctx, "received event")

	payload, style, err := decodeEvent(raw)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to decode event", "err", err)
		h.metrics.Failure(ctx)
		return nil, err
	}

	err = h.store.Store(ctx, payload)
	if err != nil {
		h.log.ErrorContext(ctx, "failed to store message", "err", err)
		h.metrics.Failure(ctx)
		if style == styleDirect {
			return &events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       errorBody,
			}, nil
		}
		return nil, err
	}

	h.metrics.Success(ctx)
	if style == styleDirect {
		return &events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Body:       successBody,
		}, nil
	}
	return nil, nil
}
