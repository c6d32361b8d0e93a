package handlers

import (
	"net/http"

	"armada/internal/http/middleware"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cfg := current()
	svc := services.AuthService{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL, RequestID: requestID(c)}
	token, user, err := svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "belum login", nil)
		return
	}
	c.JSON(http.StatusOK, p)
}
