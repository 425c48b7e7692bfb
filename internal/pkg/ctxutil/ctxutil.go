package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// RequestData carries the resolved caller identity for one request.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	TokenID     uuid.UUID
}

type requestDataKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
