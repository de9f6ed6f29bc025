package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/airtickets/internal/domain"
)

type UserRepository interface {
	FindByEmailUsername(ctx context.Context, email, username string) (*domain.User, error)
	// UpdatePasswordHash replaces the stored hash and invokes deliver before
	// committing. A deliver failure rolls the update back, so the caller is
	// never left with a password nobody was told about.
	UpdatePasswordHash(ctx context.Context, userID int64, hash string, deliver func(context.Context) error) error
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

func (r *PGUserRepository) FindByEmailUsername(ctx context.Context, email, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, username, password_hash, created_at, updated_at FROM users WHERE email=$1 AND username=$2`, email, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string, deliver func(context.Context) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE users SET password_hash=$1, updated_at=now() WHERE id=$2`, hash, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	if deliver != nil {
		if err := deliver(ctx); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

var _ UserRepository = (*PGUserRepository)(nil)
