package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/fitness-auth-api/config"
	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/memory"
	"github.com/oksasatya/fitness-auth-api/internal/infrastructure/search"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := helpers.NewNopLogger()

	cfg := &config.Config{StoreDriver: config.StoreMemory}
	require.NoError(t, PrepareStore(ctx, cfg, logger))
	repo, closeFn, err := OpenStore(ctx, cfg, logger)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.UserRepository{}, repo)

	cfg.StoreDriver = "sqlite"
	_, _, err = OpenStore(ctx, cfg, logger)
	assert.ErrorContains(t, err, `unknown STORE_DRIVER "sqlite"`)
	assert.Error(t, PrepareStore(ctx, cfg, logger))
}

func TestNewSender(t *testing.T) {
	logger := helpers.NewNopLogger()

	s, _, err := NewSender(&config.Config{MailSendEnabled: false}, logger)
	require.NoError(t, err)
	assert.IsType(t, mailer.LogSender{}, s)

	s, _, err = NewSender(&config.Config{MailSendEnabled: true, MailDelivery: config.DeliveryDirect}, logger)
	require.NoError(t, err)
	assert.IsType(t, mailer.LogSender{}, s, "missing mailgun credentials")

	s, _, err = NewSender(&config.Config{
		MailSendEnabled: true,
		MailDelivery:    config.DeliveryDirect,
		MailgunDomain:   "mg.example.com",
		MailgunAPIKey:   "key",
		MailgunSender:   "noreply@example.com",
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &mailer.Mailgun{}, s)
}

func TestNewUserIndex(t *testing.T) {
	logger := helpers.NewNopLogger()

	x, err := NewUserIndex(&config.Config{SearchEnabled: false}, logger)
	require.NoError(t, err)
	assert.IsType(t, application.NopIndex{}, x)

	x, err = NewUserIndex(&config.Config{
		SearchEnabled:      true,
		ElasticsearchAddrs: "http://localhost:9200",
		ESUsersIndex:       "users",
	}, logger)
	require.NoError(t, err)
	assert.IsType(t, &search.UserIndex{}, x)
}
