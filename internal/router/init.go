package router

import (
	"time"

	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/container"
	handlers "github.com/oksasatya/fitness-auth-api/internal/interface/http"
	"github.com/oksasatya/fitness-auth-api/internal/interface/middleware"
	"github.com/oksasatya/fitness-auth-api/internal/router/modules"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	GitHub  *handlers.GitHubHandler
	Users   *handlers.UserHandler
	System  *handlers.SystemHandler
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	repo := container.GetUserRepo()
	index := container.GetUserIndex()
	jwt := container.GetJWT()

	verification := application.NewVerification(repo, container.GetMailer(), logger,
		cfg.AppName, cfg.CompanyName, cfg.VerifyEmailURL)
	auth := application.NewAuthService(repo, jwt, verification, index, logger)
	users := application.NewUserService(repo, index, logger)
	gh := application.NewGitHubService(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubAPIURL, cfg.GitHubTimeout, logger)
	compute := application.NewComputeService(container.GetTaskPool(), cfg.HeavyTaskIterations)

	cookies := helpers.NewCookie(cfg.CookieName, cfg.CookieDomain, cfg.CookieSecure)
	return Deps{
		Auth:    handlers.NewAuthHandler(auth, verification, cookies, logger),
		GitHub:  handlers.NewGitHubHandler(gh, logger),
		Users:   handlers.NewUserHandler(users, logger),
		System:  handlers.NewSystemHandler(compute, logger),
		JWT:     jwt,
		Cookies: cookies,
	}
}

// InitModules builds every module from the container and adds it to r.
// Call once per process after the container is populated.
func InitModules(r *Registry) Deps {
	cfg := container.GetConfig()
	deps := buildDeps()

	perUser := middleware.RateLimit(container.GetRedis(), cfg.RateLimitMax, cfg.RateLimitWindow,
		middleware.KeyByUserID(), nil, container.GetLogger())
	debugLimit := middleware.RateLimit(container.GetRedis(), 120, time.Minute,
		middleware.KeyByIP(), nil, container.GetLogger())

	r.AddRoot(modules.NewSystemModule(deps.System))
	r.Add(modules.NewPublicModule(deps.Auth, deps.GitHub, deps.JWT, cfg.CookieName))
	r.Add(modules.NewPrivateModule(deps.Users, deps.JWT, cfg.CookieName, perUser))
	r.Add(modules.NewDebugModule(debugLimit))
	return deps
}
