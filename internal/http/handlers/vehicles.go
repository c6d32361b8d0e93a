package handlers

import (
	"net/http"

	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/vehicles?active=true
func GetVehicles(c *gin.Context) {
	list, err := services.VehicleService{RequestID: requestID(c)}.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := services.VehicleService{RequestID: requestID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func CreateVehicle(c *gin.Context) {
	var in services.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := services.VehicleService{RequestID: requestID(c)}.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.VehicleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	v, err := services.VehicleService{RequestID: requestID(c)}.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (services.VehicleService{RequestID: requestID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kendaraan berhasil dihapus"})
}
