package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
)

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

type consumer struct {
	sender mailer.Sender
	logger *logrus.Logger
}

// handle sends one queued job. A failed send is retried once through the
// queue; a message that fails again or cannot be decoded is dropped.
func (c *consumer) handle(ctx context.Context, body []byte, redelivered bool) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		c.logger.WithError(err).Warn("bad message")
		return outcomeDrop
	}

	sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := c.sender.Send(sendCtx, job); err != nil {
		log := c.logger.WithError(err).WithField("subject", job.Subject)
		if redelivered {
			log.Error("send failed twice, dropping")
			return outcomeDrop
		}
		log.Warn("send failed, requeueing")
		return outcomeRetry
	}
	return outcomeAck
}
