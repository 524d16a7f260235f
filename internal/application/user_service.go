package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/domain/apperror"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
)

// UserService backs the gated admin routes.
type UserService struct {
	Repo   repository.UserRepository
	Index  UserIndex
	Logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, index UserIndex, logger *logrus.Logger) *UserService {
	if index == nil {
		index = NopIndex{}
	}
	return &UserService{Repo: repo, Index: index, Logger: logger}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return apperror.Internal(err)
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return u, nil
}

func (s *UserService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if err := s.Index.DeleteAll(ctx); err != nil {
		s.Logger.WithError(err).Warn("clear search index failed")
	}
	s.Logger.WithField("deleted", n).Warn("all users deleted")
	return n, nil
}

func (s *UserService) DeleteByID(ctx context.Context, id string) error {
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	if err := s.Index.Delete(ctx, id); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("unindex user failed")
	}
	return nil
}

// Edit applies the profile fields in p. Email, password and verification state
// cannot be changed here.
func (s *UserService) Edit(ctx context.Context, id string, p entity.ProfileUpdate) (*entity.User, error) {
	if p.Empty() {
		return nil, ErrNothingToUpdate
	}
	u, err := s.Repo.UpdateProfile(ctx, id, p)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if err := s.Index.Index(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("reindex user failed")
	}
	return u, nil
}

func (s *UserService) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	users, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, ErrSearchUnavailable.Wrap(err)
	}
	return users, nil
}
