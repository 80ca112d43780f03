package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaeyeonyy/moacc/internal/apperr"
)

// Response is the uniform success envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondSuccess writes the success envelope with status 200.
func RespondSuccess(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

// RespondError translates a service error into the error envelope. Errors
// outside the apperr taxonomy become an opaque 500.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperr.FromError(err); ok {
		c.JSON(appErr.Status, ErrorResponse{Code: appErr.Code, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	})
}

// RespondBadRequest reports an unparseable request body.
func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    "INVALID_REQUEST",
		Message: message,
	})
}
