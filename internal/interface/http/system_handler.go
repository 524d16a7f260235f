package handlers

import (
	"errors"
	"expvar"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/application"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
)

var (
	heavyTasksDone     = expvar.NewInt("heavy_tasks_done")
	heavyTasksRejected = expvar.NewInt("heavy_tasks_rejected")
)

type SystemHandler struct {
	Compute *application.ComputeService
	Logger  *logrus.Logger
	pid     int
}

func NewSystemHandler(compute *application.ComputeService, logger *logrus.Logger) *SystemHandler {
	return &SystemHandler{Compute: compute, Logger: logger, pid: os.Getpid()}
}

// Root GET / reports which worker answered.
func (h *SystemHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"pid": h.pid}, "Server is running", nil)
}

// HeavyTask GET /heavy-task runs the CPU demo on the bounded pool.
func (h *SystemHandler) HeavyTask(c *gin.Context) {
	sum, err := h.Compute.Sum(c.Request.Context())
	if err != nil {
		if errors.Is(err, application.ErrComputeUnavailable) {
			heavyTasksRejected.Add(1)
		}
		writeError(c, h.Logger, err)
		return
	}
	heavyTasksDone.Add(1)
	response.Success(c, http.StatusOK, gin.H{"sum": sum, "pid": h.pid}, "heavy task done", nil)
}

// NotFound answers unmatched routes with the JSON envelope.
func (h *SystemHandler) NotFound(c *gin.Context) {
	response.Error(c, http.StatusNotFound, "route not found", gin.H{"path": c.Request.URL.Path})
}
