package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// RequestData carries the authenticated respondent through a request's
// context: who they are, their role, and whether they hold admin or
// debug privileges.
type RequestData struct {
	UserID      uuid.UUID
	Role        string
	IsAdmin     bool
	DebugAccess bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(contextKey{}).(*RequestData)
	return rd
}
