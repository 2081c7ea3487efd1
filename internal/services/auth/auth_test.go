package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/lib/jwt"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_secret"

type fakeUserStorage struct {
	users map[string]models.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[string]models.User)}
}

func (f *fakeUserStorage) SaveUser(_ context.Context, userID, email string, passHash []byte) (models.User, error) {
	if _, ok := f.users[email]; ok {
		return models.User{}, storage.ErrUserExists
	}

	user := models.User{ID: uuid.MustParse(userID), Email: email, PassHash: passHash}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserStorage) User(_ context.Context, email string) (models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}
	return user, nil
}

func newService() (*Auth, *fakeUserStorage) {
	store := newFakeUserStorage()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, store, store, testSecret, time.Hour), store
}

func TestRegisterLogin_HappyPath(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	userID, err := svc.RegisterNewUser(ctx, email, password)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, userID)

	token, err := svc.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := jwt.ParseToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, ident.ID)
	assert.Equal(t, email, ident.Email)
}

func TestRegister_Duplicate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	email := gofakeit.Email()
	password := gofakeit.Password(true, true, true, false, false, 12)

	_, err := svc.RegisterNewUser(ctx, email, password)
	require.NoError(t, err)

	_, err = svc.RegisterNewUser(ctx, email, password)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	email := gofakeit.Email()

	_, err := svc.RegisterNewUser(ctx, email, "correct-password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, email, "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Login(context.Background(), gofakeit.Email(), "whatever1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
