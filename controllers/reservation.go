// controllers/reservation.go
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

// CreateReservationInput defines the expected JSON structure for booking
type CreateReservationInput struct {
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerPhone string     `json:"customer_phone"`
	StaffID       *int       `json:"staff_id"`
	ServiceName   string     `json:"service_name" binding:"required"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
	Status        string     `json:"status"`
	Notes         *string    `json:"notes"`
}

// UpdateReservationInput defines the expected JSON structure for editing
type UpdateReservationInput struct {
	CustomerName  *string    `json:"customer_name"`
	CustomerPhone *string    `json:"customer_phone"`
	StaffID       *int       `json:"staff_id"`
	ServiceName   *string    `json:"service_name"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        *string    `json:"status"`
	Notes         *string    `json:"notes"`
}

// CreateReservation books a slot. Customers are referenced by free-text
// name/phone so walk-ins without a record can still book.
func CreateReservation(c *gin.Context) {
	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status := models.ReservationScheduled
	if input.Status != "" {
		if !models.ValidReservationStatus(input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: "+input.Status)
			return
		}
		status = input.Status
	}

	if input.CustomerPhone != "" && !utils.ValidatePhone(input.CustomerPhone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	if input.StaffID != nil {
		var staff models.Staff
		if err := config.DB.First(&staff, "id = ?", *input.StaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	reservation := models.Reservation{
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		StaffID:       input.StaffID,
		ServiceName:   input.ServiceName,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Status:        status,
		Notes:         input.Notes,
	}

	if err := config.DB.Create(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reservation")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, reservation)
}

// UpdateReservation applies a partial-field patch to an existing reservation
func UpdateReservation(c *gin.Context) {
	var input UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reservation models.Reservation
	if err := config.DB.First(&reservation, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Status != nil {
		if !models.ValidReservationStatus(*input.Status) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status: "+*input.Status)
			return
		}
		reservation.Status = *input.Status
	}
	if input.CustomerName != nil {
		reservation.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		if *input.CustomerPhone != "" && !utils.ValidatePhone(*input.CustomerPhone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		reservation.CustomerPhone = *input.CustomerPhone
	}
	if input.StaffID != nil {
		var staff models.Staff
		if err := config.DB.First(&staff, "id = ?", *input.StaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		reservation.StaffID = input.StaffID
	}
	if input.ServiceName != nil {
		reservation.ServiceName = *input.ServiceName
	}
	if input.StartTime != nil {
		reservation.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		reservation.EndTime = input.EndTime
	}
	if input.Notes != nil {
		reservation.Notes = input.Notes
	}

	if err := config.DB.Save(&reservation).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reservation")
		return
	}

	utils.RespondWithData(c, http.StatusOK, reservation)
}

// CancelReservation marks a reservation cancelled; the row is kept for the
// day's schedule and reporting.
func CancelReservation(c *gin.Context) {
	result := config.DB.Model(&models.Reservation{}).
		Where("id = ?", c.Param("id")).
		Update("status", models.ReservationCancelled)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel reservation")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reservation not found")
		return
	}

	utils.RespondOK(c)
}
