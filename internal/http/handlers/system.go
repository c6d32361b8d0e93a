package handlers

import (
	"net/http"
	"sync"

	intconfig "armada/internal/config"
	intdb "armada/internal/db"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "armada backend berjalan"})
}

// DBCheck pings the pool and reports tables missing from the schema.
func DBCheck(c *gin.Context) {
	ctx := c.Request.Context()
	if err := intconfig.EnsureDB(ctx); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database belum terhubung", err)
		return
	}

	missing := intdb.MissingTables(ctx, intconfig.DB)
	settlement := intdb.HasColumn(ctx, intconfig.DB, "trips", "settlement_status")
	status := http.StatusOK
	if len(missing) > 0 || !settlement {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"message":           "koneksi database OK",
		"missing_tables":    missing,
		"settlement_column": settlement,
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router belum siap"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
