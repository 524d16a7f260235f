package application

import "github.com/oksasatya/fitness-auth-api/internal/domain/apperror"

var (
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "invalid credentials")
	ErrEmailNotVerified   = apperror.New(apperror.KindValidation, "please verify your email first")
	ErrUserExists         = apperror.New(apperror.KindConflict, "user already exists")
	ErrUserNotFound       = apperror.New(apperror.KindNotFound, "user not found")
	ErrTokenNotFound      = apperror.New(apperror.KindValidation, "invalid verification token")
	ErrNothingToUpdate    = apperror.New(apperror.KindValidation, "no editable fields supplied")

	ErrMissingCode        = apperror.New(apperror.KindValidation, "authorization code is missing")
	ErrMissingUsername    = apperror.New(apperror.KindValidation, "username is required")
	ErrGitHubAuthFailed   = apperror.New(apperror.KindUpstream, "failed to authenticate with github")
	ErrGitHubUnavailable  = apperror.New(apperror.KindUpstream, "failed to fetch gists")
	ErrGistsNotFound      = apperror.New(apperror.KindNotFound, "no gists found for this user")
	ErrSearchUnavailable  = apperror.New(apperror.KindUpstream, "search is unavailable")
	ErrComputeUnavailable = apperror.New(apperror.KindUnavailable, "server busy, try again later")
)
