package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/domain/apperror"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer/templates"
)

// ResetPasswordLength is the length of generated replacement passwords.
const ResetPasswordLength = 12

// Verification owns the email-verification and password-reset flows.
type Verification struct {
	Repo        repository.UserRepository
	Mailer      mailer.Sender
	Logger      *logrus.Logger
	AppName     string
	CompanyName string
	// VerifyURL builds the link embedded in the verification mail.
	VerifyURL func(token string) string
}

func NewVerification(repo repository.UserRepository, sender mailer.Sender, logger *logrus.Logger,
	appName, companyName string, verifyURL func(string) string) *Verification {
	return &Verification{
		Repo:        repo,
		Mailer:      sender,
		Logger:      logger,
		AppName:     appName,
		CompanyName: companyName,
		VerifyURL:   verifyURL,
	}
}

// NewPendingToken returns a fresh verification token for a user about to be created.
func (v *Verification) NewPendingToken() (string, error) {
	return helpers.GenerateOpaqueToken()
}

// Deliver sends the verification mail for u. Failures are logged and returned
// but never undo the signup.
func (v *Verification) Deliver(ctx context.Context, u *entity.User) error {
	data := templates.NewVerifyEmailData(v.AppName, u.UserName, u.Email,
		v.VerifyURL(u.PendingEmailVerificationToken), templates.WithCompany(v.CompanyName))
	return v.send(ctx, u.Email, templates.VerifyEmail, data)
}

// Redeem consumes token and marks its owner verified.
func (v *Verification) Redeem(ctx context.Context, token string) (*entity.User, error) {
	u, err := v.Repo.ConsumeVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, apperror.Internal(err)
	}
	v.Logger.WithField("user_id", u.ID).Info("email verified")
	return u, nil
}

// ResetPassword replaces the password of the user owning email with a random
// one and mails it. The new hash is stored before delivery is attempted, so a
// failed delivery still leaves the password changed.
func (v *Verification) ResetPassword(ctx context.Context, email string) error {
	u, err := v.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return apperror.Internal(err)
	}

	plain, err := helpers.GeneratePassword(ResetPasswordLength)
	if err != nil {
		return apperror.Internal(err)
	}
	hash, err := helpers.HashPassword(plain)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := v.Repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return apperror.Internal(err)
	}

	data := templates.NewPasswordResetData(v.AppName, u.UserName, u.Email, plain, templates.WithCompany(v.CompanyName))
	_ = v.send(ctx, u.Email, templates.PasswordReset, data)
	return nil
}

func (v *Verification) send(ctx context.Context, to, tmpl string, data templates.EmailData) error {
	log := v.Logger.WithFields(logrus.Fields{"to": to, "template": tmpl})

	subject, text, html, err := templates.Render(tmpl, data)
	if err != nil {
		log.WithError(err).Error("render email failed")
		return err
	}
	if err := v.Mailer.Send(ctx, mailer.EmailJob{To: to, Subject: subject, Text: text, HTML: html}); err != nil {
		log.WithError(err).Warn("send email failed")
		return err
	}
	log.Debug("email sent")
	return nil
}
