package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/clipsearch/internal/domain/user"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type postgresUserRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresUserRepo(db *pgxpool.Pool, log logger.Logger) user.Repository {
	return &postgresUserRepo{db: db, logger: log}
}

func (r *postgresUserRepo) List(ctx context.Context) ([]user.User, error) {
	query := `
		SELECT id, username, role, profile_picture_url
		FROM users
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal("failed to list users", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.ProfilePictureURL); err != nil {
			return nil, apperror.NewInternal("failed to scan user row", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating user rows", err)
	}
	return users, nil
}

func (r *postgresUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, role, profile_picture_url, password_hash
		FROM users
		WHERE username = $1
	`
	u := &user.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.Role,
		&u.ProfilePictureURL,
		&u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("user", username)
		}
		return nil, apperror.NewInternal("error when querying user", err)
	}

	return u, nil
}
