package handlers

import (
	"net/http"
	"strings"

	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/checklists?start_date=&end_date=&status=
func GetChecklists(c *gin.Context) {
	f := repositories.ChecklistFilter{
		StartDate: strings.TrimSpace(c.Query("start_date")),
		EndDate:   strings.TrimSpace(c.Query("end_date")),
		Status:    strings.TrimSpace(c.Query("status")),
	}
	list, err := services.ChecklistService{RequestID: requestID(c)}.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, err := services.ChecklistService{RequestID: requestID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func CreateChecklist(c *gin.Context) {
	var in services.ChecklistInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cl, err := services.ChecklistService{RequestID: requestID(c)}.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func UpdateChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ChecklistInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cl, err := services.ChecklistService{RequestID: requestID(c)}.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

// POST /api/checklists/:id/complete
func CompleteChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cl, err := services.ChecklistService{RequestID: requestID(c)}.Complete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func DeleteChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (services.ChecklistService{RequestID: requestID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checklist berhasil dihapus"})
}
