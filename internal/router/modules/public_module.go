package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fitness-auth-api/internal/interface/http"
	"github.com/oksasatya/fitness-auth-api/internal/interface/middleware"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

// PublicModule mounts the unauthenticated account routes under /api/public.
// check-auth lives here but sits behind the Auth gate.
type PublicModule struct {
	Auth       *handlers.AuthHandler
	GitHub     *handlers.GitHubHandler
	JWT        *helpers.JWTManager
	CookieName string
}

func NewPublicModule(auth *handlers.AuthHandler, gh *handlers.GitHubHandler, jwt *helpers.JWTManager, cookieName string) *PublicModule {
	return &PublicModule{Auth: auth, GitHub: gh, JWT: jwt, CookieName: cookieName}
}

func (m *PublicModule) Register(rg *gin.RouterGroup) {
	pub := rg.Group("/public")
	{
		pub.POST("/signup", m.Auth.SignUp)
		pub.POST("/signin", m.Auth.SignIn)
		pub.GET("/emailverify/:token", m.Auth.VerifyEmail)
		pub.POST("/resetpassword", m.Auth.ResetPassword)
		pub.GET("/check-auth", middleware.Auth(m.JWT, m.CookieName), m.Auth.CheckAuth)
		pub.POST("/logout", m.Auth.Logout)

		pub.POST("/auth/github", m.GitHub.Auth)
		pub.GET("/gists/:username", m.GitHub.Gists)
	}
}
