package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// NewToken generates new JWT token and returns tokenString and err
func NewToken(user *models.User, secret string, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = user.Email
	claims["uid"] = user.ID.String()
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the caller identity.
func ParseToken(tokenString, secret string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	uid, ok := claims["uid"].(string)
	if !ok {
		return models.Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(uid)
	if err != nil {
		return models.Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)

	return models.Identity{ID: userID, Email: email}, nil
}
