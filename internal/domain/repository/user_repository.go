package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/campus-doctor-directory/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for credential store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// MarkVerified flips is_verified for the row matching both email and code
	// and returns it. ErrNotFound when no row matches.
	MarkVerified(ctx context.Context, email, code string) (*entity.User, error)
}
