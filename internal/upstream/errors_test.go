package upstream

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsAuthFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"http 401", &ServerError{Endpoint: "/x", Status: 401}, true},
		{"http 403", &ServerError{Endpoint: "/x", Status: 403}, true},
		{"http 500", &ServerError{Endpoint: "/x", Status: 500, RawBody: "boom"}, false},
		{"envelope 401", &ApplicationError{Endpoint: "/x", Code: 401}, true},
		{"envelope 40101", &ApplicationError{Endpoint: "/x", Code: 40101}, true},
		{"envelope 50008", &ApplicationError{Endpoint: "/x", Code: 50008}, true},
		{"envelope other failure", &ApplicationError{Endpoint: "/x", Code: 500, Message: "系统异常"}, false},
		{
			"decode with auth envelope body",
			&DecodeError{Endpoint: "/x", RawBody: `{"code":40101,"message":"token invalid"}`, Err: errors.New("shape mismatch")},
			true,
		},
		{
			"decode with non-auth body",
			&DecodeError{Endpoint: "/x", RawBody: `{"code":500}`, Err: errors.New("shape mismatch")},
			false,
		},
		{
			"decode with non-json body",
			&DecodeError{Endpoint: "/x", RawBody: "<html>gateway error</html>", Err: errors.New("invalid character")},
			false,
		},
		{"timeout", &TimeoutError{Endpoint: "/x", Limit: time.Second}, false},
		{"transport", &TransportError{Endpoint: "/x", Err: errors.New("refused")}, false},
		{"nil", nil, false},
		{"plain error mentioning 401", errors.New("server said 401"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAuthFailure(tt.err))
		})
	}
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&TimeoutError{Endpoint: "/x", Limit: time.Second}))
	assert.True(t, IsTransient(&TransportError{Endpoint: "/x", Err: errors.New("reset")}))

	assert.False(t, IsTransient(&ServerError{Endpoint: "/x", Status: 500}))
	assert.False(t, IsTransient(&ApplicationError{Endpoint: "/x", Code: 500}))
	assert.False(t, IsTransient(&DecodeError{Endpoint: "/x", Err: errors.New("bad json")}))
	assert.False(t, IsTransient(nil))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "timeout", Classify(&TimeoutError{}))
	assert.Equal(t, "transport", Classify(&TransportError{Err: errors.New("x")}))
	assert.Equal(t, "server", Classify(&ServerError{Status: 502}))
	assert.Equal(t, "decode", Classify(&DecodeError{Err: errors.New("x")}))
	assert.Equal(t, "application", Classify(&ApplicationError{Code: 500}))
	assert.Equal(t, "canceled", Classify(context.Canceled))
	assert.Equal(t, "unknown", Classify(errors.New("something else")))

	// Wrapped classified errors still classify.
	wrapped := fmt.Errorf("cycle failed: %w", &TimeoutError{Endpoint: "/x"})
	assert.Equal(t, "timeout", Classify(wrapped))
}

func TestServerError_PreservesRawBody(t *testing.T) {
	err := &ServerError{Endpoint: "/pms/welcome/make-qrcode", Status: 500, RawBody: "维护中，请稍后再试"}
	assert.Contains(t, err.Error(), "维护中，请稍后再试")
	assert.Contains(t, err.Error(), "500")
}

func TestDecodeError_PreservesRawBody(t *testing.T) {
	err := &DecodeError{Endpoint: "/x", RawBody: `{"weird":1}`, Err: errors.New("missing field")}
	assert.Contains(t, err.Error(), `{"weird":1}`)
	assert.ErrorContains(t, err, "missing field")
}
