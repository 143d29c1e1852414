package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"github.com/desertthunder/showtime/internal/models"
	"github.com/desertthunder/showtime/internal/shared"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	KindTimeout ErrorKind = iota + 1
	KindNetwork
	KindApplication
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindApplication:
		return "application"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTimeout:
		return shared.ErrTimeout
	case KindNetwork:
		return shared.ErrNetwork
	case KindApplication:
		return shared.ErrApplication
	default:
		return shared.ErrServer
	}
}

// APIError is a normalized API failure.
//
// Message is the text meant for display. It is empty when an application error came back without
// a server message, in which case callers show their own fallback.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.sentinel().Error()
	}
	s := fmt.Sprintf("api %s error: %s", e.Kind, msg)
	if e.Status != 0 {
		s = fmt.Sprintf("api %s error (status %d): %s", e.Kind, e.Status, msg)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// UserMessage implements [shared.UserFacing].
func (e *APIError) UserMessage() string { return e.Message }

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// IsKind reports whether err is an [*APIError] of kind k.
func IsKind(err error, k ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

// normalizeTransport maps a failed round trip to timeout or network.
//
// When the caller's own context was canceled the context error passes through unchanged.
func normalizeTransport(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: KindTimeout, Message: shared.TimeoutMessage, Err: err}
	}
	return &APIError{Kind: KindNetwork, Message: shared.NetworkMessage, Err: err}
}

// decode unwraps the response envelope into T.
//
// A 2xx envelope with success=false and any non-2xx status carrying an envelope is an application
// error with the server message. Any other non-2xx status is a server error.
func decode[T any](resp *APIResponse) (T, error) {
	var zero T

	var env models.Envelope
	envErr := json.Unmarshal(resp.Body, &env)
	isEnvelope := envErr == nil && env.IsEnvelope()

	if !resp.OK() {
		if isEnvelope {
			return zero, &APIError{Kind: KindApplication, Status: resp.StatusCode, Message: env.Message}
		}
		return zero, &APIError{
			Kind:    KindServer,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}

	if !isEnvelope {
		return zero, &APIError{Kind: KindServer, Status: resp.StatusCode, Message: "Unexpected response from server", Err: envErr}
	}
	if !env.OK() {
		return zero, &APIError{Kind: KindApplication, Status: resp.StatusCode, Message: env.Message}
	}
	if !env.HasData() {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, &APIError{Kind: KindServer, Status: resp.StatusCode, Message: "Unexpected response from server", Err: err}
	}
	return out, nil
}
