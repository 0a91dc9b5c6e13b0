package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type NotFoundResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondError(c *gin.Context, code int, message, detail string) {
	c.JSON(code, ErrorResponse{
		Error:  message,
		Detail: detail,
	})
}

// HandleServiceError maps a plan service failure onto the HTTP surface.
// Client input problems are 400; anything upstream is 500 with the cause as detail.
func HandleServiceError(c *gin.Context, err error, message string) {
	traceID := c.GetString("trace_id")

	switch {
	case errors.Is(err, ErrInvalidChatRequest), errors.Is(err, ErrInvalidRequestBody):
		RespondError(c, http.StatusBadRequest, "Geçersiz istek", err.Error())
	case errors.Is(err, ErrNoJSON), errors.Is(err, ErrMalformedPlan):
		log.Printf("[%s] reconciliation error: %v", traceID, err)
		RespondError(c, http.StatusInternalServerError, message, err.Error())
	case errors.Is(err, ErrEmptyCompletion), errors.Is(err, ErrNoChoices):
		log.Printf("[%s] upstream content error: %v", traceID, err)
		RespondError(c, http.StatusInternalServerError, message, err.Error())
	default:
		log.Printf("[%s] upstream error (status %d): %v", traceID, StatusCodeOf(err), err)
		RespondError(c, http.StatusInternalServerError, message, err.Error())
	}
}
