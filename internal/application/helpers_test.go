package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/memory"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
)

// recordingSender keeps every job it is asked to send.
type recordingSender struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
}

func (s *recordingSender) Send(_ context.Context, job mailer.EmailJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *recordingSender) last() mailer.EmailJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[len(s.jobs)-1]
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, job mailer.EmailJob) error {
	return m.Called(ctx, job).Error(0)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Index(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockIndex) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockIndex) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	args := m.Called(ctx, q, size)
	users, _ := args.Get(0).([]*entity.User)
	return users, args.Error(1)
}

type fixture struct {
	repo   *memory.UserRepository
	mail   mailer.Sender
	jwt    *helpers.JWTManager
	verify *Verification
	auth   *AuthService
}

func newFixture(t *testing.T, sender mailer.Sender) *fixture {
	t.Helper()
	if sender == nil {
		sender = &recordingSender{}
	}
	repo := memory.NewUserRepository()
	logger := helpers.NewNopLogger()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	v := NewVerification(repo, sender, logger, "FitApp", "Fit Inc", func(token string) string {
		return "http://localhost:5000/api/public/emailverify/" + token
	})
	return &fixture{
		repo:   repo,
		mail:   sender,
		jwt:    jwt,
		verify: v,
		auth:   NewAuthService(repo, jwt, v, nil, logger),
	}
}

func validSignUp(email string) SignUpInput {
	return SignUpInput{
		Email:              email,
		Password:           "correct-horse",
		UserName:           "ada",
		Age:                30,
		FitnessGoal:        "strength",
		FitnessLevel:       "beginner",
		SubscriptionStatus: "free",
	}
}

// signUpVerified creates a user and redeems its verification token.
func (f *fixture) signUpVerified(t *testing.T, email string) *entity.User {
	t.Helper()
	ctx := context.Background()
	u, err := f.auth.SignUp(ctx, validSignUp(email))
	require.NoError(t, err)
	_, err = f.verify.Redeem(ctx, u.PendingEmailVerificationToken)
	require.NoError(t, err)
	return u
}
