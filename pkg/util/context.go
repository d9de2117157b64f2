// Package util holds small context helpers shared across the module.
package util

import (
	"context"

	"github.com/google/uuid"
)

type key string

const requestIDKey = key("x-request-id")

// WithRequestID returns a context carrying the given request id, generating a
// fresh uuid-v4 when id is empty. The simulator uses one id per trading
// session so every log line of a run can be correlated.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id from ctx, or "" when none is set.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
