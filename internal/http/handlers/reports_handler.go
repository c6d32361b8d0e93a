package handlers

import (
	"net/http"
	"strings"

	"armada/internal/domain"
	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/vehicle-costs?start_date=&end_date=&vehicle_id=&show_general=
func ReportVehicleCosts(c *gin.Context) {
	fe := domain.FieldErrors{}
	f := repositories.CostFilter{
		StartDate:   strings.TrimSpace(c.Query("start_date")),
		EndDate:     strings.TrimSpace(c.Query("end_date")),
		VehicleID:   queryID(c, fe, "vehicle_id"),
		ShowGeneral: queryBool(c, "show_general"),
	}
	if err := fe.Err(); err != nil {
		RespondDomainError(c, err)
		return
	}

	rep, err := services.ReportService{RequestID: requestID(c)}.VehicleCosts(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func allowanceFilter(c *gin.Context) (services.AllowanceReportFilter, error) {
	fe := domain.FieldErrors{}
	f := services.AllowanceReportFilter{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		Status:    strings.TrimSpace(c.Query("status")),
		VehicleID: queryID(c, fe, "vehicle_id"),
	}
	if f.Status == "all" {
		f.Status = ""
	}
	return f, fe.Err()
}

// GET /api/reports/allowance
func ReportAllowance(c *gin.Context) {
	f, err := allowanceFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rep, err := services.ReportService{RequestID: requestID(c)}.Allowance(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GET /api/reports/allowance.pdf
func ReportAllowancePDF(c *gin.Context) {
	f, err := allowanceFilter(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rid := requestID(c)
	svc := services.DocsService{Reports: services.ReportService{RequestID: rid}, RequestID: rid}
	pdf, filename, err := svc.GenerateAllowanceReport(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, filename, pdf)
}
