package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/domain/apperror"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

type AuthService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Verification *Verification
	Index        UserIndex
	Logger       *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, v *Verification, index UserIndex, logger *logrus.Logger) *AuthService {
	if index == nil {
		index = NopIndex{}
	}
	return &AuthService{Repo: repo, JWT: jwt, Verification: v, Index: index, Logger: logger}
}

type SignUpInput struct {
	Email              string
	Password           string
	UserName           string
	Age                int
	FitnessGoal        string
	FitnessLevel       string
	SubscriptionStatus string
}

type SignInResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// SignUp creates an unverified user holding a pending verification token and
// mails the verification link. No session is issued.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	token, err := s.Verification.NewPendingToken()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u := &entity.User{
		Email:                         in.Email,
		PasswordHash:                  hash,
		UserName:                      in.UserName,
		Age:                           in.Age,
		FitnessGoal:                   in.FitnessGoal,
		FitnessLevel:                  in.FitnessLevel,
		SubscriptionStatus:            in.SubscriptionStatus,
		EmailVerified:                 false,
		PendingEmailVerificationToken: token,
	}
	// the unique index still guards against a concurrent signup passing the lookup above
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserExists
		}
		return nil, apperror.Internal(err)
	}
	s.Logger.WithField("user_id", u.ID).Info("user signed up")

	_ = s.Verification.Deliver(ctx, u)
	if err := s.Index.Index(ctx, u); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
	return u, nil
}

// SignIn checks credentials and issues a session token. Unknown email and a
// wrong password are reported identically.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (SignInResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return SignInResult{}, ErrInvalidCredentials
		}
		return SignInResult{}, apperror.Internal(err)
	}
	if !u.EmailVerified {
		return SignInResult{}, ErrEmailNotVerified
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return SignInResult{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return SignInResult{}, apperror.Internal(err)
	}
	return SignInResult{User: u, Token: token, ExpiresAt: exp}, nil
}
