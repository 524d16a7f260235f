package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
)

func newUser(email, token string) *entity.User {
	return &entity.User{
		Email:                         email,
		PasswordHash:                  "hash",
		UserName:                      "ada",
		Age:                           30,
		FitnessGoal:                   "strength",
		FitnessLevel:                  "beginner",
		SubscriptionStatus:            "free",
		PendingEmailVerificationToken: token,
	}
}

func TestCreate_AssignsIDAndRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	u := newUser("a@b.com", "t1")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	err := repo.Create(ctx, newUser("a@b.com", "t2"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestGet_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := newUser("a@b.com", "")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.UserName = "mutated"

	again, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "ada", again.UserName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestConsumeVerificationToken_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, newUser("a@b.com", "tok")))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ConsumeVerificationToken(ctx, "tok"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())

	u, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
	assert.Empty(t, u.PendingEmailVerificationToken)

	_, err = repo.ConsumeVerificationToken(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateProfile_OnlySetFields(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := newUser("a@b.com", "")
	require.NoError(t, repo.Create(ctx, u))

	level := "advanced"
	got, err := repo.UpdateProfile(ctx, u.ID, entity.ProfileUpdate{FitnessLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, "advanced", got.FitnessLevel)
	assert.Equal(t, "strength", got.FitnessGoal)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	u := newUser("a@b.com", "")
	require.NoError(t, repo.Create(ctx, u))
	require.NoError(t, repo.Create(ctx, newUser("c@d.com", "")))

	require.NoError(t, repo.DeleteByID(ctx, u.ID))
	assert.ErrorIs(t, repo.DeleteByID(ctx, u.ID), repository.ErrNotFound)

	// the email is free again
	require.NoError(t, repo.Create(ctx, newUser("a@b.com", "")))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
