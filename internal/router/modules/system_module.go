package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/fitness-auth-api/internal/interface/http"
)

// SystemModule serves the liveness and compute demo routes at the root.
type SystemModule struct {
	Handler *handlers.SystemHandler
}

func NewSystemModule(h *handlers.SystemHandler) *SystemModule {
	return &SystemModule{Handler: h}
}

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Root)
	rg.GET("/heavy-task", m.Handler.HeavyTask)
}
