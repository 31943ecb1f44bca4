package video

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Video is a catalog entry for an uploaded clip. FileName is the stable key
// the player loads by, so it is unique per owner and never rewritten.
type Video struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	FileName    string
	Title       string
	Description string
	UploadedAt  time.Time
}

type Repository interface {
	// List returns the full candidate set, oldest upload first.
	List(ctx context.Context) ([]Video, error)

	Save(ctx context.Context, v *Video) error

	Delete(ctx context.Context, id uuid.UUID) error
}
