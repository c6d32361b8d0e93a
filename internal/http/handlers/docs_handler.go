package handlers

import (
	"net/http"

	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

// GetTripSuratJalan returns the delivery note of a trip (inline).
func GetTripSuratJalan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rid := requestID(c)
	svc := services.DocsService{Trips: services.TripService{RequestID: rid}, RequestID: rid}
	pdf, filename, err := svc.GenerateSuratJalan(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, filename, pdf)
}

func sendPDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
