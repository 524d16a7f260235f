package application

import (
	"context"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
)

// UserIndex is the search side of the user store. Writes are best effort.
type UserIndex interface {
	Index(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Search(ctx context.Context, q string, size int) ([]*entity.User, error)
}

// NopIndex is used when search is disabled.
type NopIndex struct{}

func (NopIndex) Index(context.Context, *entity.User) error { return nil }
func (NopIndex) Delete(context.Context, string) error      { return nil }
func (NopIndex) DeleteAll(context.Context) error           { return nil }
func (NopIndex) Search(context.Context, string, int) ([]*entity.User, error) {
	return []*entity.User{}, nil
}
