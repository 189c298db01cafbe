package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorType represents the category of a provider failure
type ErrorType int

const (
	// ErrTypeConfig indicates the provider is not usable (missing key, unknown name)
	ErrTypeConfig ErrorType = iota
	// ErrTypeNetwork indicates a transport failure
	ErrTypeNetwork
	// ErrTypeTimeout indicates the call exceeded its deadline
	ErrTypeTimeout
	// ErrTypeHTTP indicates a non-success status from the API
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeEmpty indicates a well-formed response with no usable lines
	ErrTypeEmpty
	// ErrTypeCanceled indicates the caller abandoned the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeConfig:
		return "Configuration Error"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeEmpty:
		return "Empty Response"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ProviderError is returned by every Provider on failure
type ProviderError struct {
	Type       ErrorType // Category of error
	Provider   string    // Provider name ("gemini", "openai", ...)
	Message    string    // Human-readable message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", e.Provider, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is a ProviderError of type t
func IsType(err error, t ErrorType) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == t
	}
	return false
}

func newError(provider string, t ErrorType, msg string, err error) *ProviderError {
	return &ProviderError{Type: t, Provider: provider, Message: msg, Err: err}
}

// classify maps a transport-level error to a ProviderError. It understands
// context errors, net timeouts and gRPC status codes.
func classify(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	if errors.Is(err, context.Canceled) {
		return newError(provider, ErrTypeCanceled, "request canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return newError(provider, ErrTypeTimeout, "request timed out", err)
	}

	if st, ok := status.FromError(err); ok && st.Code() != codes.Unknown {
		switch st.Code() {
		case codes.DeadlineExceeded:
			return newError(provider, ErrTypeTimeout, "request timed out", err)
		case codes.Canceled:
			return newError(provider, ErrTypeCanceled, "request canceled", err)
		case codes.Unauthenticated, codes.PermissionDenied:
			return newError(provider, ErrTypeConfig, "API key rejected", err)
		case codes.Unavailable:
			return newError(provider, ErrTypeNetwork, "service unavailable", err)
		default:
			return newError(provider, ErrTypeHTTP, st.Message(), err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return newError(provider, ErrTypeTimeout, "request timed out", err)
		}
		return newError(provider, ErrTypeNetwork, "network error", err)
	}

	return newError(provider, ErrTypeNetwork, "request failed", err)
}
