package templates

import (
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
		d.Year = utc.Year()
	}
}

func WithCompany(name string) Option { return func(d *EmailData) { d.CompanyName = name } }

// NewBaseEmailData fills the common fields and applies opts.
func NewBaseEmailData(appName, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    name,
		Email:   email,
		AppName: appName,
	}
	WithTime(time.Now())(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerifyEmailData(appName, name, email, verifyURL string, opts ...Option) EmailData {
	d := NewBaseEmailData(appName, name, email, opts...)
	d.VerifyURL = verifyURL
	return d
}

func NewPasswordResetData(appName, name, email, newPassword string, opts ...Option) EmailData {
	d := NewBaseEmailData(appName, name, email, opts...)
	d.NewPassword = newPassword
	return d
}
