package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey  ContextKey = "claims"
	ActorIDKey ContextKey = "actor_id"
)

var (
	ErrNoClaimsInContext  = errors.New("no claims found in context")
	ErrNoActorIDInClaims  = errors.New("no user_id found in claims")
	ErrInvalidActorIDType = errors.New("user_id must be a string")
)

// GetActorIDFromContext extracts the authenticated acting user from the
// request context. Every mutating rate change operation requires it.
func GetActorIDFromContext(c context.Context) (string, error) {
	claims, exists := c.Value(ClaimsKey).(jwt.MapClaims)
	if !exists {
		return "", ErrNoClaimsInContext
	}

	actorID, exists := claims["user_id"]
	if !exists {
		return "", ErrNoActorIDInClaims
	}

	actorIDStr, ok := actorID.(string)
	if !ok {
		return "", ErrInvalidActorIDType
	}

	return actorIDStr, nil
}
