package handlers

import (
	"errors"
	"net/http"

	"armada/internal/domain"
	"armada/internal/http/middleware"
	"armada/internal/services"
	"armada/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, fields map[string]string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Errors:    fields,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusUnprocessableEntity, "validation_error", "data tidak valid", domain.Fields(err))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", "data tidak ditemukan", nil)
	case domain.IsInvalidTransition(err):
		respondError(c, http.StatusConflict, "invalid_transition", "perubahan status tidak diizinkan", nil)
	case domain.IsImmutableState(err):
		respondError(c, http.StatusConflict, "immutable_state", "trip hanya bisa diedit saat status draft", nil)
	case domain.IsAlreadySettled(err):
		respondError(c, http.StatusConflict, "already_settled", "uang sangu trip ini sudah diselesaikan", nil)
	case domain.IsReferentialIntegrity(err):
		respondError(c, http.StatusConflict, "still_referenced", "data masih digunakan oleh trip", nil)
	case domain.IsConflict(err):
		var ce domain.ConflictError
		errors.As(err, &ce)
		msg := ce.Msg
		if msg == "" {
			msg = "data sudah ada"
		}
		respondError(c, http.StatusConflict, "conflict", msg, nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusForbidden, "forbidden", "anda tidak memiliki akses", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid_credentials", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
