package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avelkov/sporthub/internal/action"
	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/jwt"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = action.Client("invalid credentials")
	ErrUserExists         = action.Client("user already exists")
)

type Auth struct {
	log          *slog.Logger
	userSaver    UserSaver
	userProvider UserProvider
	tokenSecret  string
	tokenTTL     time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, userID, email string, passwordHash []byte) (user models.User, err error)
}

type UserProvider interface {
	User(ctx context.Context, email string) (models.User, error)
}

// New returns a new instance of the Auth service
func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	tokenSecret string,
	tokenTTL time.Duration,
) *Auth {
	return &Auth{
		log:          log,
		userSaver:    userSaver,
		userProvider: userProvider,
		tokenSecret:  tokenSecret,
		tokenTTL:     tokenTTL,
	}
}

func (a *Auth) Login(ctx context.Context, email string, password string) (string, error) {
	const op = "auth.Login"
	log := a.log.With("op", op)
	log.Info("login user")

	user, err := a.userProvider.User(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", "err", err)
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get user", "err", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Warn("invalid credentials", "err", err)
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(&user, a.tokenSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", "err", err)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

func (a *Auth) RegisterNewUser(ctx context.Context, email string, password string) (uuid.UUID, error) {
	const op = "auth.RegisterNewUser"
	log := a.log.With("op", op)
	log.Info("registering new user")

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate passwordHash", "err", err)
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.userSaver.SaveUser(ctx, uuid.New().String(), email, passwordHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user exists", "err", err)
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("failed to save user", "err", err)
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered")

	return user.ID, nil
}
