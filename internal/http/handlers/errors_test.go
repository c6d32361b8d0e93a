package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"armada/internal/domain"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"validation", domain.NewValidation("amount", "jumlah wajib diisi"), http.StatusUnprocessableEntity, "validation_error"},
		{"not found", domain.NotFoundError{Resource: "trip"}, http.StatusNotFound, "not_found"},
		{"transition", domain.InvalidTransitionError{Resource: "trip", From: "draft", To: "completed"}, http.StatusConflict, "invalid_transition"},
		{"immutable", domain.ImmutableStateError{Resource: "trip", Status: "completed"}, http.StatusConflict, "immutable_state"},
		{"settled", domain.AlreadySettledError{Resource: "trip", ID: 1}, http.StatusConflict, "already_settled"},
		{"referenced", domain.ReferentialIntegrityError{Resource: "vehicle", ReferencedBy: "2 trip"}, http.StatusConflict, "still_referenced"},
		{"conflict", domain.ConflictError{Resource: "vehicle", Msg: "nomor polisi sudah terdaftar"}, http.StatusConflict, "conflict"},
		{"unauthorized", domain.UnauthorizedError{Action: "override"}, http.StatusForbidden, "forbidden"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondDomainError(c, tc.err)

			assert.Equal(t, tc.want, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			if tc.code == "internal_error" {
				assert.Equal(t, "terjadi kesalahan", body.Error)
			}
			if tc.code == "validation_error" {
				assert.Equal(t, "jumlah wajib diisi", body.Errors["amount"])
			}
		})
	}
}
