package http

import (
	"context"
	"errors"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/jwt"
)

var ErrNoToken = errors.New("no session token")

type ctxKey int

const tokenKey ctxKey = iota

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// JWTResolver resolves the caller identity from the bearer token the
// middleware stashed in the request context.
type JWTResolver struct {
	secret string
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{secret: secret}
}

func (r *JWTResolver) Identity(ctx context.Context) (models.Identity, error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return models.Identity{}, ErrNoToken
	}

	return jwt.ParseToken(token, r.secret)
}
