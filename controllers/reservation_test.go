package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationDefaultsToScheduled(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "POST", "/reservations", map[string]interface{}{
		"customer_name": "Walk In",
		"service_name":  "Haircut",
		"start_time":    "2024-06-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Reservation
	decodeData(t, env, &created)
	assert.Equal(t, models.ReservationScheduled, created.Status)
	assert.Nil(t, created.StaffID)
}

func TestCreateReservationRejectsInvalidStatus(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "POST", "/reservations", map[string]interface{}{
		"customer_name": "Walk In",
		"service_name":  "Haircut",
		"start_time":    "2024-06-01T10:00:00Z",
		"status":        "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestCreateReservationRejectsUnknownStaff(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "POST", "/reservations", map[string]interface{}{
		"customer_name": "Walk In",
		"service_name":  "Haircut",
		"start_time":    "2024-06-01T10:00:00Z",
		"staff_id":      99999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "Staff member not found")
}

func TestCancelReservationKeepsRow(t *testing.T) {
	r := setupTest(t)

	_, env := doJSON(t, r, "POST", "/reservations", map[string]interface{}{
		"customer_name": "Iris",
		"service_name":  "Makeup",
		"start_time":    "2024-06-01T11:00:00Z",
	})
	var created models.Reservation
	decodeData(t, env, &created)

	w, _ := doJSON(t, r, "DELETE", fmt.Sprintf("/reservations/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Reservation
	require.NoError(t, config.DB.First(&reloaded, "id = ?", created.ID).Error)
	assert.Equal(t, models.ReservationCancelled, reloaded.Status)
}

func TestReservationsByDateAnnotatesStaffName(t *testing.T) {
	r := setupTest(t)

	staff := models.Staff{Name: "Stylist One", IsActive: true, Role: "staff"}
	require.NoError(t, config.DB.Create(&staff).Error)

	res := models.Reservation{
		CustomerName: "Jade",
		ServiceName:  "Waxing",
		StaffID:      &staff.ID,
		Status:       models.ReservationScheduled,
		StartTime:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, config.DB.Create(&res).Error)

	other := models.Reservation{
		CustomerName: "Elsewhere",
		ServiceName:  "Haircut",
		Status:       models.ReservationScheduled,
		StartTime:    time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, config.DB.Create(&other).Error)

	_, env := doJSON(t, r, "GET", "/reports/reservations?date=2024-06-01", nil)
	var rows []ReservationRow
	decodeData(t, env, &rows)

	require.Len(t, rows, 1, "only the requested date's bookings")
	assert.Equal(t, "Jade", rows[0].CustomerName)
	require.NotNil(t, rows[0].StaffName)
	assert.Equal(t, "Stylist One", *rows[0].StaffName)
}
