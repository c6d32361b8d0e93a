package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"armada/internal/domain"
	"armada/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Settings carries the configuration handlers need beyond the shared DB.
type Settings struct {
	JWTSecret []byte
	TokenTTL  time.Duration
	OwnerRole string
	Kinds     domain.KindSet
}

var (
	settingsMu sync.RWMutex
	settings   Settings
)

func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = s
}

func current() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
		return false
	}
	return true
}

// pathID parses :id; on failure the response is already written.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", nil)
		return 0, false
	}
	return id, true
}

// queryID reads an optional positive id from the query string. Blank is zero.
func queryID(c *gin.Context, fe domain.FieldErrors, key string) int64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		fe.Add(key, "harus berupa id yang valid")
		return 0
	}
	return id
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return v
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}
