package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresVideoRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresVideoRepo(db *pgxpool.Pool, log logger.Logger) video.Repository {
	return &postgresVideoRepo{db: db, logger: log}
}

func (r *postgresVideoRepo) List(ctx context.Context) ([]video.Video, error) {
	sql, args, err := psql.
		Select("id", "owner_id", "file_name", "title", "description", "uploaded_at").
		From("videos").
		OrderBy("uploaded_at ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build video list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list videos", err)
	}
	defer rows.Close()

	videos := make([]video.Video, 0)
	for rows.Next() {
		var v video.Video
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.FileName, &v.Title, &v.Description, &v.UploadedAt); err != nil {
			return nil, apperror.NewInternal("failed to scan video row", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating video rows", err)
	}
	return videos, nil
}

func (r *postgresVideoRepo) Save(ctx context.Context, v *video.Video) error {
	sql, args, err := psql.
		Insert("videos").
		Columns("id", "owner_id", "file_name", "title", "description", "uploaded_at").
		Values(v.ID, v.OwnerID, v.FileName, v.Title, v.Description, v.UploadedAt).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build video insert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("video", "file_name", v.FileName)
		}
		return apperror.NewInternal("failed to insert video", err)
	}
	return nil
}

func (r *postgresVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.
		Delete("videos").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build video delete", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewInternal("failed to delete video", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("video", id.String())
	}
	return nil
}
