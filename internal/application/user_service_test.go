package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitness-auth-api/internal/domain/apperror"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

func TestUserService_GetUnknownIsNotFound(t *testing.T) {
	f := newFixture(t, nil)
	svc := NewUserService(f.repo, nil, helpers.NewNopLogger())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUserService_EditOnlyProfileFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	u := f.signUpVerified(t, "a@b.com")

	idx := &mockIndex{}
	idx.On("Index", mock.Anything, mock.MatchedBy(func(u *entity.User) bool { return u.FitnessGoal == "endurance" })).Return(nil).Once()
	svc := NewUserService(f.repo, idx, helpers.NewNopLogger())

	goal := "endurance"
	got, err := svc.Edit(ctx, u.ID, entity.ProfileUpdate{FitnessGoal: &goal})
	require.NoError(t, err)
	assert.Equal(t, "endurance", got.FitnessGoal)
	assert.Equal(t, "a@b.com", got.Email)
	assert.True(t, got.EmailVerified)
	idx.AssertExpectations(t)

	_, err = svc.Edit(ctx, u.ID, entity.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	_, err = svc.Edit(ctx, "missing", entity.ProfileUpdate{FitnessGoal: &goal})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	a := f.signUpVerified(t, "a@b.com")
	f.signUpVerified(t, "c@d.com")

	idx := &mockIndex{}
	idx.On("Delete", mock.Anything, a.ID).Return(nil).Once()
	idx.On("DeleteAll", mock.Anything).Return(assert.AnError).Once()
	svc := NewUserService(f.repo, idx, helpers.NewNopLogger())

	require.NoError(t, svc.DeleteByID(ctx, a.ID))
	assert.ErrorIs(t, svc.DeleteByID(ctx, a.ID), ErrUserNotFound)

	n, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
	idx.AssertExpectations(t)
}

func TestUserService_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	disabled := NewUserService(f.repo, nil, helpers.NewNopLogger())
	users, err := disabled.Search(ctx, "ada", 10)
	require.NoError(t, err)
	assert.Empty(t, users)

	idx := &mockIndex{}
	idx.On("Search", mock.Anything, "ada", 10).Return(nil, assert.AnError).Once()
	svc := NewUserService(f.repo, idx, helpers.NewNopLogger())
	_, err = svc.Search(ctx, "ada", 10)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))
}
