package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/internal/domain/apperror"
	"github.com/oksasatya/fitness-auth-api/pkg/response"
	"github.com/oksasatya/fitness-auth-api/pkg/validation"
)

// writeError maps err onto its status code. Causes of internal and upstream
// failures are logged and never sent to the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	if logger != nil && (kind == apperror.KindInternal || kind == apperror.KindUpstream) {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"kind":       kind.String(),
		}).Error("request failed")
	}
	response.Error(c, kind.HTTPStatus(), apperror.PublicMessage(err), nil)
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, 400, "invalid payload", validation.ToDetails(err))
}
