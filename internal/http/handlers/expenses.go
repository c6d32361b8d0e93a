package handlers

import (
	"net/http"
	"strings"

	"armada/internal/domain"
	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

func expenseService(c *gin.Context) services.ExpenseService {
	return services.ExpenseService{Kinds: current().Kinds, RequestID: requestID(c)}
}

// GET /api/expenses?start_date=&end_date=&kind=&vehicle_id=&trip_id=&category_id=
func ListExpenses(c *gin.Context) {
	fe := domain.FieldErrors{}
	f := repositories.ExpenseFilter{
		StartDate:  strings.TrimSpace(c.Query("start_date")),
		EndDate:    strings.TrimSpace(c.Query("end_date")),
		VehicleID:  queryID(c, fe, "vehicle_id"),
		TripID:     queryID(c, fe, "trip_id"),
		CategoryID: queryID(c, fe, "category_id"),
	}
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind, ok := current().Kinds.ParseKind(raw)
		if !ok {
			fe.Add("kind", "tipe kategori tidak didukung")
		}
		f.Kind = string(kind)
	}
	if err := fe.Err(); err != nil {
		RespondDomainError(c, err)
		return
	}

	list, err := expenseService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := expenseService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func CreateExpense(c *gin.Context) {
	var in services.ExpenseInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := expenseService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.ExpenseInput
	if !BindJSONOrError(c, &in) {
		return
	}
	e, err := expenseService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := expenseService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "biaya berhasil dihapus"})
}
