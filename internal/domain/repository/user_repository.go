package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup. Malformed ids are reported the same way.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the interface for user-related storage operations.
type UserRepository interface {
	// Create stores u and assigns u.ID, u.CreatedAt and u.UpdatedAt.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateProfile(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	// ConsumeVerificationToken atomically marks the owner of token as verified
	// and clears the token. A token can be consumed at most once.
	ConsumeVerificationToken(ctx context.Context, token string) (*entity.User, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}
