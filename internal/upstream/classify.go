package upstream

import (
	"context"
	"errors"
)

// Classify returns a normalized kind name for err suitable for tagging
// metrics and log fields. The taxonomy is closed; anything outside it
// maps to "unknown".
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var (
		timeoutErr   *TimeoutError
		transportErr *TransportError
		serverErr    *ServerError
		decodeErr    *DecodeError
		appErr       *ApplicationError
	)
	switch {
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &serverErr):
		return "server"
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &appErr):
		return "application"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "unknown"
	}
}
