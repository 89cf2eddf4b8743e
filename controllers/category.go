// controllers/category.go
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

type CreateCategoryInput struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// GetCategories retrieves categories ordered for display
func GetCategories(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	query := config.DB.Order("display_order")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var categories []models.Category
	if err := query.Find(&categories).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithData(c, http.StatusOK, categories)
}

// CreateCategory creates a new category
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := models.Category{
		Name:         input.Name,
		DisplayOrder: input.DisplayOrder,
		IsActive:     true,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create category")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, category)
}

// DeleteCategory removes a category and disables every service under it.
// The HOME category is undeletable in any letter case.
func DeleteCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Category not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if strings.EqualFold(category.Name, "HOME") {
		utils.RespondWithError(c, http.StatusBadRequest, "Home category cannot be deleted")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Service{}).
		Where("category = ?", category.Name).
		Updates(map[string]interface{}{"active": false, "show_on_home": false}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to disable services")
		return
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	tx.Commit()

	utils.LogAction(config.DataDir(), "category_deleted", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	utils.RespondOK(c)
}
