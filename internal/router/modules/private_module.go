package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fitness-auth-api/internal/interface/http"
	"github.com/oksasatya/fitness-auth-api/internal/interface/middleware"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

// PrivateModule mounts the admin user routes under /api/private, all behind the Auth gate.
type PrivateModule struct {
	Users      *handlers.UserHandler
	JWT        *helpers.JWTManager
	CookieName string
	// Limit runs after the gate so it can key on the user id; nil disables it.
	Limit gin.HandlerFunc
}

func NewPrivateModule(users *handlers.UserHandler, jwt *helpers.JWTManager, cookieName string, limit gin.HandlerFunc) *PrivateModule {
	return &PrivateModule{Users: users, JWT: jwt, CookieName: cookieName, Limit: limit}
}

func (m *PrivateModule) Register(rg *gin.RouterGroup) {
	priv := rg.Group("/private")
	priv.Use(middleware.Auth(m.JWT, m.CookieName))
	if m.Limit != nil {
		priv.Use(m.Limit)
	}
	{
		priv.GET("/getallusers", m.Users.List)
		priv.GET("/getuserbyid/:id", m.Users.Get)
		priv.DELETE("/deleteall", m.Users.DeleteAll)
		priv.DELETE("/deletebyid/:id", m.Users.DeleteByID)
		priv.PUT("/editbyid/:id", m.Users.Edit)
		priv.GET("/searchusers", m.Users.Search)
	}
}
