package handlers

import (
	"net/http"
	"strings"

	"armada/internal/domain"
	"armada/internal/http/middleware"
	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

func tripService(c *gin.Context) services.TripService {
	return services.TripService{OwnerRole: current().OwnerRole, RequestID: requestID(c)}
}

// GET /api/trips?start_date=&end_date=&status=&vehicle_id=
func ListTrips(c *gin.Context) {
	fe := domain.FieldErrors{}
	f := repositories.TripFilter{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		VehicleID: queryID(c, fe, "vehicle_id"),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" && raw != "all" {
		st, ok := domain.ParseTripStatus(raw)
		if !ok {
			fe.Add("status", "status tidak valid")
		}
		f.Status = string(st)
	}
	if err := fe.Err(); err != nil {
		RespondDomainError(c, err)
		return
	}

	trips, err := tripService(c).ListTrips(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func GetTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := tripService(c).GetTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	t, err := tripService(c).CreateTrip(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id (draft only)
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := tripService(c)
	if err := svc.UpdateTripFields(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	t, err := svc.GetTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// PATCH /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := tripService(c).RequestTransition(c.Request.Context(), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status trip berhasil diubah", "id": id, "status": strings.ToLower(strings.TrimSpace(req.Status))})
}

// POST /api/trips/:id/settle
func SettleTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.SettleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := tripService(c).SettleAllowance(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "uang sangu berhasil diselesaikan", "settlement": s})
}

// PUT /api/owner/trips/:id/status
func OverrideTripStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p, _ := middleware.GetPrincipal(c)
	if err := tripService(c).OverrideStatus(c.Request.Context(), p, id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status trip diubah oleh owner", "id": id})
}

func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := tripService(c).DeleteTrip(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip berhasil dihapus"})
}
