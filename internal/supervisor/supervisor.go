// Package supervisor keeps a fixed number of worker processes alive.
package supervisor

import (
	"context"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Workers int
	// Restart delay after the first rapid crash, doubling up to MaxBackoff.
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// A worker that ran at least this long is restarted immediately and its backoff reset.
	StableAfter time.Duration
	// How long a worker gets between SIGTERM and SIGKILL.
	ShutdownTimeout time.Duration
}

type Supervisor struct {
	cfg     Config
	spawner Spawner
	logger  *logrus.Logger

	alive    atomic.Int32
	restarts atomic.Int64
}

func New(cfg Config, spawner Spawner, logger *logrus.Logger) *Supervisor {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Supervisor{cfg: cfg, spawner: spawner, logger: logger}
}

// Alive returns the number of running workers.
func (s *Supervisor) Alive() int { return int(s.alive.Load()) }

// Restarts returns how many times a worker has exited unexpectedly.
func (s *Supervisor) Restarts() int64 { return s.restarts.Load() }

// Run starts every slot and blocks until ctx is cancelled and all workers have stopped.
func (s *Supervisor) Run(ctx context.Context) error {
	s.logger.WithField("workers", s.cfg.Workers).Info("supervisor starting")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.cfg.Workers; i++ {
		slot := i
		g.Go(func() error { return s.runSlot(ctx, slot) })
	}
	err := g.Wait()
	s.logger.Info("supervisor stopped")
	return err
}

func (s *Supervisor) newBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.InitialBackoff
	b.MaxInterval = s.cfg.MaxBackoff
	b.MaxElapsedTime = 0
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.Reset()
	return b
}

func (s *Supervisor) runSlot(ctx context.Context, slot int) error {
	log := s.logger.WithField("slot", slot)
	b := s.newBackoff()

	for ctx.Err() == nil {
		started := time.Now()
		p, err := s.spawner.Spawn(slot)
		if err != nil {
			wait := b.NextBackOff()
			log.WithError(err).WithField("retry_in", wait).Error("spawn worker failed")
			if !sleep(ctx, wait) {
				return nil
			}
			continue
		}
		s.alive.Add(1)
		log.WithField("pid", p.Pid()).Info("worker started")

		done := make(chan error, 1)
		go func() { done <- p.Wait() }()

		select {
		case <-ctx.Done():
			s.stop(log, p, done)
			s.alive.Add(-1)
			return nil
		case err := <-done:
			s.alive.Add(-1)
			s.restarts.Add(1)
			uptime := time.Since(started)

			var wait time.Duration
			if uptime >= s.cfg.StableAfter {
				b.Reset()
			} else {
				wait = b.NextBackOff()
			}
			log.WithError(err).WithFields(logrus.Fields{
				"pid":      p.Pid(),
				"uptime":   uptime.Round(time.Millisecond),
				"retry_in": wait,
			}).Warn("worker exited")
			if !sleep(ctx, wait) {
				return nil
			}
		}
	}
	return nil
}

// stop asks p to terminate and kills it if it is still running after ShutdownTimeout.
func (s *Supervisor) stop(log *logrus.Entry, p Process, done <-chan error) {
	if err := p.Signal(syscall.SIGTERM); err != nil {
		log.WithError(err).Warn("signal worker failed")
	}
	timer := time.NewTimer(s.cfg.ShutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
		log.WithField("pid", p.Pid()).Info("worker stopped")
	case <-timer.C:
		log.WithField("pid", p.Pid()).Warn("worker did not stop in time, killing")
		_ = p.Kill()
		<-done
	}
}

// sleep waits for d or until ctx ends; it reports whether the wait completed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
