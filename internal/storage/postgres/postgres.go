package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/avelkov/sporthub/internal/domain/models"
	"github.com/avelkov/sporthub/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage struct {
	dbpool *pgxpool.Pool
}

var (
	pgOnce sync.Once
)

func New(dbAddr string) (*Storage, error) {
	const op = "storage.postgres.New"

	var (
		dbpool *pgxpool.Pool
		err    error
	)

	//single instance of the db
	pgOnce.Do(func() {
		dbpool, err = pgxpool.New(context.Background(), dbAddr)
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{dbpool: dbpool}, nil
}

func (s *Storage) SaveUser(ctx context.Context, userID, email string, passHash []byte) (models.User, error) {
	const op = "storage.postgres.SaveUser"

	query := "INSERT INTO users(id,email,pass_hash) VALUES(@userId,@userEmail,@userPassHash) RETURNING id,email,pass_hash"
	args := pgx.NamedArgs{
		"userId":       userID,
		"userEmail":    email,
		"userPassHash": passHash,
	}

	user := models.User{}
	err := s.dbpool.QueryRow(
		ctx,
		query,
		args,
	).Scan(&user.ID, &user.Email, &user.PassHash)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) User(ctx context.Context, email string) (models.User, error) {
	const op = "storage.postgres.User"

	query := "SELECT id,email,pass_hash FROM users WHERE email=$1"
	var user models.User

	err := s.dbpool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PassHash)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) ClosePool() {
	s.dbpool.Close()
}
