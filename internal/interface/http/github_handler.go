package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
)

type GitHubHandler struct {
	Svc    *application.GitHubService
	Logger *logrus.Logger
}

func NewGitHubHandler(svc *application.GitHubService, logger *logrus.Logger) *GitHubHandler {
	return &GitHubHandler{Svc: svc, Logger: logger}
}

type githubAuthRequest struct {
	Code string `json:"code"`
}

type gistsRequest struct {
	Username string `uri:"username" json:"username" binding:"required,ghlogin"`
}

// Auth POST /api/public/auth/github
func (h *GitHubHandler) Auth(c *gin.Context) {
	var req githubAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	profile, err := h.Svc.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, profile, "github user", nil)
}

// Gists GET /api/public/gists/:username
func (h *GitHubHandler) Gists(c *gin.Context) {
	var req gistsRequest
	if err := c.ShouldBindUri(&req); err != nil {
		writeBindError(c, err)
		return
	}
	gists, err := h.Svc.Gists(c.Request.Context(), req.Username)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gists, "gists", map[string]any{"count": len(gists)})
}
