package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TimeoutError reports that a call exceeded its per-request deadline.
type TimeoutError struct {
	Endpoint string
	Limit    time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: request exceeded %s deadline", e.Endpoint, e.Limit)
}

// TransportError reports a connection-level failure with no HTTP response.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError reports a non-2xx HTTP status. RawBody carries the
// response verbatim; the service is known to return human-readable
// error text that must reach the user.
type ServerError struct {
	Endpoint string
	Status   int
	RawBody  string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server returned %d: %s", e.Endpoint, e.Status, e.RawBody)
}

// DecodeError reports a 2xx response whose body did not match the
// expected shape. The body may still be valid JSON (an error envelope),
// so it is preserved verbatim rather than swallowed.
type DecodeError struct {
	Endpoint string
	RawBody  string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode failed: %v; server returned: %s", e.Endpoint, e.Err, e.RawBody)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ApplicationError reports an HTTP 200 whose envelope carries a failure
// code or is missing required data.
type ApplicationError struct {
	Endpoint string
	Code     int
	Message  string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: application error %d: %s", e.Endpoint, e.Code, e.Message)
}

// Envelope codes observed to mean an invalid or expired satoken.
// TODO(auth-codes): confirm the full set against the real backend; these
// are the sa-token style codes seen in captured traffic.
func authEnvelopeCode(code int) bool {
	switch code {
	case 401, 40101, 50008:
		return true
	default:
		return false
	}
}

// IsAuthFailure reports whether err means the session credential is
// invalid or expired and a re-exchange should be attempted. The rule is
// explicit: HTTP 401/403, an envelope failure code from the auth set, or
// a decode failure whose raw body parses as such an envelope. No
// substring matching on error text.
func IsAuthFailure(err error) bool {
	switch e := err.(type) {
	case *ServerError:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case *ApplicationError:
		return authEnvelopeCode(e.Code)
	case *DecodeError:
		var env struct {
			Code int `json:"code"`
		}
		if json.Unmarshal([]byte(e.RawBody), &env) != nil {
			return false
		}
		return authEnvelopeCode(env.Code)
	default:
		return false
	}
}

// IsTransient reports whether err is worth a fast retry: the call never
// produced a usable response but the next one might.
func IsTransient(err error) bool {
	switch err.(type) {
	case *TimeoutError, *TransportError:
		return true
	default:
		return false
	}
}
