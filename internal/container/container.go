package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/config"
	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/domain/repository"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/mailer"
)

// process-wide singletons set once by main before the router is built.
// Each worker process has its own copy.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	taskPool   *helpers.TaskPool

	userRepo  repository.UserRepository
	userIndex application.UserIndex
	sender    mailer.Sender
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger != nil {
		return logger
	}
	return helpers.NewNopLogger()
}
func SetRedis(r *redis.Client)        { redisClient = r }
func GetRedis() *redis.Client         { return redisClient }
func SetJWT(m *helpers.JWTManager)    { jwtManager = m }
func GetJWT() *helpers.JWTManager     { return jwtManager }
func SetTaskPool(p *helpers.TaskPool) { taskPool = p }
func GetTaskPool() *helpers.TaskPool  { return taskPool }

func SetUserRepo(r repository.UserRepository) { userRepo = r }
func GetUserRepo() repository.UserRepository  { return userRepo }
func SetUserIndex(x application.UserIndex)    { userIndex = x }
func GetUserIndex() application.UserIndex {
	if userIndex != nil {
		return userIndex
	}
	return application.NopIndex{}
}
func SetMailer(s mailer.Sender) { sender = s }
func GetMailer() mailer.Sender {
	if sender != nil {
		return sender
	}
	return mailer.LogSender{Logger: GetLogger()}
}
