package handlers

import (
	"net/http"
	"strings"

	"armada/internal/repositories"
	"armada/internal/services"

	"github.com/gin-gonic/gin"
)

// ---- customers

func GetCustomers(c *gin.Context) {
	list, err := services.CustomerService{RequestID: requestID(c)}.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cu, err := services.CustomerService{RequestID: requestID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cu)
}

func CreateCustomer(c *gin.Context) {
	var in services.CustomerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cu, err := services.CustomerService{RequestID: requestID(c)}.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cu)
}

func UpdateCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CustomerInput
	if !BindJSONOrError(c, &in) {
		return
	}
	cu, err := services.CustomerService{RequestID: requestID(c)}.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cu)
}

func DeleteCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (services.CustomerService{RequestID: requestID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pelanggan berhasil dihapus"})
}

// ---- locations

func GetLocations(c *gin.Context) {
	list, err := services.LocationService{RequestID: requestID(c)}.List(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := services.LocationService{RequestID: requestID(c)}.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func CreateLocation(c *gin.Context) {
	var in services.LocationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	l, err := services.LocationService{RequestID: requestID(c)}.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func UpdateLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.LocationInput
	if !BindJSONOrError(c, &in) {
		return
	}
	l, err := services.LocationService{RequestID: requestID(c)}.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func DeleteLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := (services.LocationService{RequestID: requestID(c)}).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lokasi berhasil dihapus"})
}

// ---- expense categories

func categoryService(c *gin.Context) services.CategoryService {
	return services.CategoryService{Kinds: current().Kinds, RequestID: requestID(c)}
}

// GET /api/expense-categories?kind=&active=true
func GetCategories(c *gin.Context) {
	f := repositories.CategoryFilter{ActiveOnly: queryBool(c, "active")}
	if raw := strings.TrimSpace(c.Query("kind")); raw != "" {
		kind, ok := current().Kinds.ParseKind(raw)
		if !ok {
			respondError(c, http.StatusUnprocessableEntity, "validation_error", "data tidak valid", map[string]string{"kind": "tipe kategori tidak didukung"})
			return
		}
		f.Kind = string(kind)
	}
	list, err := categoryService(c).List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	k, err := categoryService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, k)
}

func CreateCategory(c *gin.Context) {
	var in services.CategoryInput
	if !BindJSONOrError(c, &in) {
		return
	}
	k, err := categoryService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, k)
}

func UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !BindJSONOrError(c, &in) {
		return
	}
	k, err := categoryService(c).Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, k)
}

func DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := categoryService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kategori berhasil dihapus"})
}
