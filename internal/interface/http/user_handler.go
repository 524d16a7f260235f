package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// editRequest lists the only fields editbyid accepts. Anything else in the body is ignored.
type editRequest struct {
	UserName           *string `json:"userName" binding:"omitempty,username"`
	Age                *int    `json:"age" binding:"omitempty,gte=1,lte=130"`
	FitnessGoal        *string `json:"fitnessGoal" binding:"omitempty,max=64"`
	FitnessLevel       *string `json:"fitnessLevel" binding:"omitempty,max=64"`
	SubscriptionStatus *string `json:"subscriptionStatus" binding:"omitempty,max=64"`
}

func (r editRequest) toUpdate() entity.ProfileUpdate {
	return entity.ProfileUpdate{
		UserName:           r.UserName,
		Age:                r.Age,
		FitnessGoal:        r.FitnessGoal,
		FitnessLevel:       r.FitnessLevel,
		SubscriptionStatus: r.SubscriptionStatus,
	}
}

// List GET /api/private/getallusers
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"count": len(users)})
}

// Get GET /api/private/getuserbyid/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

// DeleteAll DELETE /api/private/deleteall
func (h *UserHandler) DeleteAll(c *gin.Context) {
	n, err := h.Svc.DeleteAll(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, "all users deleted", nil)
}

// DeleteByID DELETE /api/private/deletebyid/:id
func (h *UserHandler) DeleteByID(c *gin.Context) {
	if err := h.Svc.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "user deleted", nil)
}

// Edit PUT /api/private/editbyid/:id
func (h *UserHandler) Edit(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	u, err := h.Svc.Edit(c.Request.Context(), c.Param("id"), req.toUpdate())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

// Search GET /api/private/searchusers?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	users, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "search results", map[string]any{"count": len(users)})
}
