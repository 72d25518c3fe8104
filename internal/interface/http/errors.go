package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-doctor-directory/internal/application"
	"github.com/oksasatya/campus-doctor-directory/pkg/response"
	"github.com/oksasatya/campus-doctor-directory/pkg/validation"
)

// MsgInvalidRequest is returned for payloads that cannot be bound.
const MsgInvalidRequest = "Invalid request"

// writeError maps an application error onto the response. Causes of
// infrastructure failures are logged and never sent to the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	appErr := application.AsError(err)
	if appErr.Kind.Internal() && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"route":      c.FullPath(),
			"kind":       appErr.Kind.String(),
		}).Error(appErr.Message)
	}
	response.Error(c, appErr.Kind.HTTPStatus(), appErr.Message, nil)
}

func writeBindError(c *gin.Context, status int, err error) {
	response.Error(c, status, MsgInvalidRequest, validation.ToDetails(err))
}
