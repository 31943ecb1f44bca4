package user

import (
	"context"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Role              string    `json:"role"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	PasswordHash      string    `json:"-"`
}

type Repository interface {
	// List returns every registered user, registration order.
	List(ctx context.Context) ([]User, error)

	FindByUsername(ctx context.Context, username string) (*User, error)
}
