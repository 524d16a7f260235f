// Package bootstrap opens the infrastructure selected by config.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/config"
	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/memory"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/fitness-auth-api/internal/infrastructure/postgres"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/search"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
)

// PrepareStore applies schema changes. It runs once, before any worker serves.
func PrepareStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		return pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger)
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoUsersCollection)
		logger.WithField("collection", cfg.MongoUsersCollection).Info("ensuring mongo indexes")
		return mongodb.EnsureIndexes(ctx, coll)
	case config.StoreMemory:
		return nil
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// OpenStore returns the user repository for the configured driver and a func releasing it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.UserRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return pginfra.NewUserRepository(pool), pool.Close, nil
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoUsersCollection)
		closeFn := func() {
			c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(c)
		}
		return mongodb.NewUserRepository(coll), closeFn, nil
	case config.StoreMemory:
		logger.Warn("using in-memory user store; data is lost on restart")
		return memory.NewUserRepository(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// NewSender picks the mail transport. Without credentials mail is only logged.
func NewSender(cfg *config.Config, logger *logrus.Logger) (mailer.Sender, func(), error) {
	noop := func() {}
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; emails are logged, not sent")
		return mailer.LogSender{Logger: logger}, noop, nil
	}
	if cfg.MailDelivery == config.DeliveryQueue {
		q, err := mailer.NewQueueSender(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		return q, q.Close, nil
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Warn("mailgun not configured; emails are logged, not sent")
		return mailer.LogSender{Logger: logger}, noop, nil
	}
	return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), noop, nil
}

func NewUserIndex(cfg *config.Config, logger *logrus.Logger) (application.UserIndex, error) {
	if !cfg.SearchEnabled {
		return application.NopIndex{}, nil
	}
	es, err := search.NewClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	logger.WithField("index", cfg.ESUsersIndex).Info("user search enabled")
	return search.NewUserIndex(es, cfg.ESUsersIndex), nil
}
