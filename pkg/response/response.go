package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// Success writes {success:true, message, request_id} merged with fields.
// Fields are written at the top level of the body.
func Success(ctx *gin.Context, status int, message string, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}
	body := gin.H{}
	for k, v := range fields {
		body[k] = v
	}
	body["success"] = true
	if message != "" {
		body["message"] = message
	}
	if id := ctx.GetString(RequestIDKey); id != "" {
		body["request_id"] = id
	}
	ctx.JSON(status, body)
}

// Error writes {success:false, message, request_id} and, when details is
// non-nil, an errors field.
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{
		"success": false,
		"message": message,
	}
	if id := ctx.GetString(RequestIDKey); id != "" {
		body["request_id"] = id
	}
	if details != nil {
		body["errors"] = details
	}
	ctx.JSON(status, body)
}

// Abort writes an error body and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	Error(ctx, status, message, nil)
	ctx.Abort()
}
