package mailer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// EmailJob is a fully rendered email. It is also the JSON payload put on the
// RabbitMQ queue when delivery is asynchronous.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}

// LogSender only logs the recipient and subject. Used when MAIL_SEND_ENABLED=false.
type LogSender struct {
	Logger *logrus.Logger
}

func (s LogSender) Send(_ context.Context, job EmailJob) error {
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"to": job.To, "subject": job.Subject}).Info("mail sending disabled; email dropped")
	}
	return nil
}
