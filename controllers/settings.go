// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SetSettingInput struct {
	Value string `json:"value"`
}

// GetSetting reads one setting value; missing keys resolve to null
func GetSetting(c *gin.Context) {
	var setting models.Setting
	if err := config.DB.First(&setting, "key = ?", c.Param("key")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithData(c, http.StatusOK, nil)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, setting.Value)
}

// SetSetting upserts a setting. The admin PIN is never stored in the clear:
// a new value is hashed before it hits the table.
func SetSetting(c *gin.Context) {
	key := c.Param("key")

	var input SetSettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	value := input.Value
	if key == models.SettingAdminPin {
		hashed, err := utils.HashPin(value)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store PIN")
			return
		}
		value = hashed
	}

	setting := models.Setting{Key: key, Value: value}
	if err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	utils.RespondOK(c)
}

// GetSettings returns the full settings map
func GetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := config.DB.Find(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}

	utils.RespondWithData(c, http.StatusOK, result)
}
