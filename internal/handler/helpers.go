package handler

import (
	"errors"
	"net/http"

	"festora-chat/internal/transport/httpdto"
	festora_errors "festora-chat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseUUID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, festora_errors.ErrInvalidInput
	}
	return uuid.Parse(value)
}

// writeError maps core sentinel errors onto HTTP statuses and stable
// error codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, festora_errors.ErrValidation):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "VALIDATION_FAILED"))
	case errors.Is(err, festora_errors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "INVALID_TRANSITION"))
	case errors.Is(err, festora_errors.ErrDuplicateInquiry):
		c.JSON(http.StatusConflict, httpdto.NewErrorResponse(err.Error(), "DUPLICATE_INQUIRY"))
	case errors.Is(err, festora_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse(err.Error(), "NOT_FOUND"))
	case errors.Is(err, festora_errors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(err.Error(), "INVALID_REQUEST"))
	case errors.Is(err, festora_errors.ErrSendCancelled):
		c.JSON(http.StatusRequestTimeout, httpdto.NewErrorResponse(err.Error(), "SEND_CANCELLED"))
	default:
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
