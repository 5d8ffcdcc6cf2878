package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
	RoleKey    contextKey = "role"
)

// GetActorFromContext returns the authenticated actor id and role set by the
// identity middleware. The second return is false when no identity was
// attached to the request.
func GetActorFromContext(ctx context.Context) (uuid.UUID, string, bool) {
	actorVal := ctx.Value(ActorIDKey)
	if actorVal == nil {
		return uuid.Nil, "", false
	}

	actorStr, ok := actorVal.(string)
	if !ok {
		return uuid.Nil, "", false
	}

	actorID, err := uuid.Parse(actorStr)
	if err != nil {
		return uuid.Nil, "", false
	}

	role, _ := ctx.Value(RoleKey).(string)
	return actorID, role, true
}

func SetActorContext(ctx context.Context, actorID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ActorIDKey, actorID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}
