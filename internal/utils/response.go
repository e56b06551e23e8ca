package utils

import (
	"errors"
	"net/http"

	"finance-tracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"` // null when empty
}

func NewResponse(status int, message string, data interface{}) Response {
	return Response{Status: status, Message: message, Data: data}
}

func NewSuccessResponse(message string, data interface{}) Response {
	return NewResponse(http.StatusOK, message, data)
}

func NewErrorResponse(status int, message string) Response {
	return NewResponse(status, message, nil)
}

// ErrorCase maps a service error to an HTTP status. An empty Message
// exposes err.Error() to the client.
type ErrorCase struct {
	Err     error
	Status  int
	Message string
}

// RespondError writes the first case whose Err matches err. Anything
// unmatched is logged and reported as a 500 carrying fallback.
func RespondError(c *gin.Context, err error, fallback string, cases ...ErrorCase) {
	for _, ec := range cases {
		if !errors.Is(err, ec.Err) {
			continue
		}
		message := ec.Message
		if message == "" {
			message = err.Error()
		}
		c.JSON(ec.Status, NewErrorResponse(ec.Status, message))
		return
	}
	logger.FromContext(c.Request.Context()).Error(fallback, zap.Error(err))
	c.JSON(http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, fallback))
}
