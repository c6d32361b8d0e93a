package api

import (
	stdhttp "net/http"

	intconfig "armada/internal/config"
	"armada/internal/domain"
	h "armada/internal/http/handlers"
	"armada/internal/http/middleware"
	"armada/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	secret := []byte(env.JWTSecret)
	ownerRole := env.OwnerRole
	if ownerRole == "" {
		ownerRole = "owner"
	}
	h.Configure(h.Settings{
		JWTSecret: secret,
		TokenTTL:  env.TokenTTL,
		OwnerRole: ownerRole,
		Kinds:     domain.NewKindSet(env.ExpenseCategoryKinds),
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/db-check", h.DBCheck)
	api.GET("/routes", h.Routes)
	api.POST("/auth/login", h.Login)

	authed := api.Group("", middleware.AuthRequired(secret))
	{
		authed.GET("/auth/me", h.Me)

		vehicles := authed.Group("/vehicles")
		vehicles.GET("", h.GetVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.POST("", h.CreateVehicle)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)

		customers := authed.Group("/customers")
		customers.GET("", h.GetCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.POST("", h.CreateCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)

		locations := authed.Group("/locations")
		locations.GET("", h.GetLocations)
		locations.GET("/:id", h.GetLocation)
		locations.POST("", h.CreateLocation)
		locations.PUT("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)

		categories := authed.Group("/expense-categories")
		categories.GET("", h.GetCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)

		trips := authed.Group("/trips")
		trips.GET("", h.ListTrips)
		trips.GET("/:id", h.GetTrip)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.PATCH("/:id/status", h.UpdateTripStatus)
		trips.POST("/:id/settle", h.SettleTrip)
		trips.GET("/:id/surat-jalan", h.GetTripSuratJalan)

		// role is checked again in the service
		owner := authed.Group("/owner", middleware.RequireRoles(ownerRole))
		owner.PUT("/trips/:id/status", h.OverrideTripStatus)

		expenses := authed.Group("/expenses")
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.POST("", h.CreateExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)

		checklists := authed.Group("/checklists")
		checklists.GET("", h.GetChecklists)
		checklists.GET("/:id", h.GetChecklist)
		checklists.POST("", h.CreateChecklist)
		checklists.PUT("/:id", h.UpdateChecklist)
		checklists.POST("/:id/complete", h.CompleteChecklist)
		checklists.DELETE("/:id", h.DeleteChecklist)

		reports := authed.Group("/reports")
		reports.GET("/vehicle-costs", h.ReportVehicleCosts)
		reports.GET("/allowance", h.ReportAllowance)
		reports.GET("/allowance.pdf", h.ReportAllowancePDF)
	}

	h.SetRouter(r)
	return r
}
