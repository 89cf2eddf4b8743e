// controllers/service.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name       string  `json:"name" binding:"required"`
	Price      float64 `json:"price" binding:"min=0"`
	Category   string  `json:"category" binding:"required"`
	ShowOnHome *bool   `json:"show_on_home"`
	Active     *bool   `json:"active"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service.
// Unset fields preserve the previous value.
type UpdateServiceInput struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price" binding:"omitempty,min=0"`
	Category   *string  `json:"category"`
	ShowOnHome *bool    `json:"show_on_home"`
	Active     *bool    `json:"active"`
}

// categoryExists validates the soft reference from Service.Category; a
// service may only point at a category row that actually exists.
func categoryExists(name string) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// CreateService creates a new service
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	exists, err := categoryExists(input.Category)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		utils.RespondWithError(c, http.StatusBadRequest, "Category not found: "+input.Category)
		return
	}

	service := models.Service{
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
		IsActive: true,
	}
	if input.ShowOnHome != nil {
		service.ShowOnHome = *input.ShowOnHome
	}
	if input.Active != nil {
		service.IsActive = *input.Active
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, service)
}

// GetServices retrieves the catalog; active_only=false includes soft-deleted rows
func GetServices(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	query := config.DB.Order("category, name")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	utils.RespondWithData(c, http.StatusOK, services)
}

// GetServicesByCategory retrieves active services under one category name.
// "HOME" is not a real grouping: it resolves to the show_on_home flag.
func GetServicesByCategory(c *gin.Context) {
	name := c.Param("name")

	query := config.DB.Where("active = ?", true).Order("name")
	if strings.EqualFold(name, "HOME") {
		query = query.Where("show_on_home = ?", true)
	} else {
		query = query.Where("category = ?", name)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	utils.RespondWithData(c, http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	var service models.Service
	if err := config.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, service)
}

// UpdateService applies a partial-field patch to an existing service
func UpdateService(c *gin.Context) {
	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Category != nil {
		exists, err := categoryExists(*input.Category)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !exists {
			utils.RespondWithError(c, http.StatusBadRequest, "Category not found: "+*input.Category)
			return
		}
		service.Category = *input.Category
	}
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.ShowOnHome != nil {
		service.ShowOnHome = *input.ShowOnHome
	}
	if input.Active != nil {
		service.IsActive = *input.Active
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	utils.RespondWithData(c, http.StatusOK, service)
}

// DeleteService soft deletes a service; the row is never removed
func DeleteService(c *gin.Context) {
	result := config.DB.Model(&models.Service{}).
		Where("id = ?", c.Param("id")).
		Update("active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	utils.RespondOK(c)
}
