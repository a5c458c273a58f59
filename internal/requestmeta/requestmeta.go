package requestmeta

import (
  "context"
  "github.com/google/uuid"
)

type requestMetaKeyType struct{}

var requestMetaKey = requestMetaKeyType{}

func WithRequestMeta(ctx context.Context, rm *RequestMeta) context.Context {
  return context.WithValue(ctx, requestMetaKey, rm)
}

func GetRequestMeta(ctx context.Context) *RequestMeta {
  val := ctx.Value(requestMetaKey)
  if rm, ok := val.(*RequestMeta); ok {
    return rm
  }
  return nil
}

// RequestMeta carries per-request metadata attached by middleware.
type RequestMeta struct {
  RequestID uuid.UUID
}
