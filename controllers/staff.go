// controllers/staff.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateStaffInput defines the expected JSON structure for creating a staff member
type CreateStaffInput struct {
	Name           string  `json:"name" binding:"required"`
	CommissionRate float64 `json:"commission_rate" binding:"min=0"`
	Role           string  `json:"role" binding:"omitempty,oneof=staff admin"`
	Pin            *string `json:"pin"`
	PhotoPath      *string `json:"photo_path"`
}

// UpdateStaffInput defines the expected JSON structure for updating a staff member
type UpdateStaffInput struct {
	Name           *string  `json:"name"`
	CommissionRate *float64 `json:"commission_rate" binding:"omitempty,min=0"`
	Role           *string  `json:"role" binding:"omitempty,oneof=staff admin"`
	Pin            *string  `json:"pin"`
	PhotoPath      *string  `json:"photo_path"`
	Active         *bool    `json:"active"`
}

// ClockStatus mirrors what the attendance widget needs for one staff member
// on one date.
type ClockStatus struct {
	OpenLog      *models.StaffTimeLog `json:"open_log"`
	FirstClockIn *time.Time           `json:"first_clock_in"`
	LastClockOut *time.Time           `json:"last_clock_out"`
}

// CreateStaff creates a new staff member; a supplied PIN is stored hashed
func CreateStaff(c *gin.Context) {
	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	staff := models.Staff{
		Name:           input.Name,
		CommissionRate: input.CommissionRate,
		Role:           "staff",
		PhotoPath:      input.PhotoPath,
		IsActive:       true,
	}
	if input.Role != "" {
		staff.Role = input.Role
	}
	if input.Pin != nil && *input.Pin != "" {
		hashed, err := utils.HashPin(*input.Pin)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store PIN")
			return
		}
		staff.Pin = &hashed
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, staff)
}

// GetStaff retrieves staff members; active_only=false includes deactivated rows
func GetStaff(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	query := config.DB.Order("name")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var staff []models.Staff
	if err := query.Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}

// GetStaffMember retrieves a specific staff member by ID
func GetStaffMember(c *gin.Context) {
	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}

// UpdateStaff applies a partial-field patch to an existing staff member
func UpdateStaff(c *gin.Context) {
	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.CommissionRate != nil {
		staff.CommissionRate = *input.CommissionRate
	}
	if input.Role != nil {
		staff.Role = *input.Role
	}
	if input.PhotoPath != nil {
		staff.PhotoPath = input.PhotoPath
	}
	if input.Active != nil {
		staff.IsActive = *input.Active
	}
	if input.Pin != nil && *input.Pin != "" {
		hashed, err := utils.HashPin(*input.Pin)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store PIN")
			return
		}
		staff.Pin = &hashed
	}

	if err := config.DB.Save(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	utils.RespondWithData(c, http.StatusOK, staff)
}

// DeleteStaff soft deletes a staff member; bill history keeps their name
func DeleteStaff(c *gin.Context) {
	result := config.DB.Model(&models.Staff{}).
		Where("id = ?", c.Param("id")).
		Update("active", false)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		return
	}

	utils.RespondOK(c)
}

// ClockInStaff opens a new time log for a staff member
func ClockInStaff(c *gin.Context) {
	var staff models.Staff
	if err := config.DB.First(&staff, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	entry := models.StaffTimeLog{
		StaffID: staff.ID,
		ClockIn: time.Now(),
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clock in")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, entry)
}

// ClockOutStaff closes a specific time log
func ClockOutStaff(c *gin.Context) {
	var entry models.StaffTimeLog
	if err := config.DB.First(&entry, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time log not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if entry.ClockOut != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Time log already closed")
		return
	}

	now := time.Now()
	entry.ClockOut = &now
	if err := config.DB.Save(&entry).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clock out")
		return
	}

	utils.RespondWithData(c, http.StatusOK, entry)
}

// GetStaffClockStatus reports the open log (if any) plus first clock-in and
// last clock-out for one staff member on one date.
func GetStaffClockStatus(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var logs []models.StaffTimeLog
	if err := config.DB.
		Where("staff_id = ? AND date(clock_in) = ?", c.Param("id"), date).
		Order("clock_in").
		Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve time logs")
		return
	}

	var status ClockStatus
	for i := range logs {
		entry := logs[i]
		if status.FirstClockIn == nil || entry.ClockIn.Before(*status.FirstClockIn) {
			t := entry.ClockIn
			status.FirstClockIn = &t
		}
		if entry.ClockOut == nil {
			open := entry
			status.OpenLog = &open
		} else if status.LastClockOut == nil || entry.ClockOut.After(*status.LastClockOut) {
			status.LastClockOut = entry.ClockOut
		}
	}

	utils.RespondWithData(c, http.StatusOK, status)
}
