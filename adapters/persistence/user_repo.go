package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
)

type postgresUserRepo struct {
	db DBTX
}

func NewPostgresUserRepo(db DBTX) user.Repository {
	return &postgresUserRepo{db: db}
}

const userColumns = `id, email, password_hash, email_confirmed_at, created_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailConfirmedAt, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", "")
		}
		return nil, storeError("error when query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO auth_users (id, email, password_hash, email_confirmed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, u.ID, strings.ToLower(u.Email), u.PasswordHash, u.EmailConfirmedAt).Scan(&u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewConflict("user", "email", u.Email)
		}
		return storeError("failed to create user", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM auth_users WHERE email = lower($1)`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("user", email)
	}
	return u, err
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM auth_users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("user", id.String())
	}
	return u, err
}

func (r *postgresUserRepo) MarkEmailConfirmed(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE auth_users SET email_confirmed_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return storeError("failed to confirm user email", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", id.String())
	}
	return nil
}
