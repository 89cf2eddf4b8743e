package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStaffHashesPin(t *testing.T) {
	r := setupTest(t)

	_, env := doJSON(t, r, "POST", "/staff", map[string]interface{}{
		"name":            "Manager",
		"commission_rate": 20.0,
		"role":            "admin",
		"pin":             "4321",
	})
	var created models.Staff
	decodeData(t, env, &created)

	var stored models.Staff
	require.NoError(t, config.DB.First(&stored, "id = ?", created.ID).Error)
	require.NotNil(t, stored.Pin)
	assert.NotEqual(t, "4321", *stored.Pin, "PIN must never be stored in the clear")
	assert.True(t, utils.IsBcryptHash(*stored.Pin))
}

func TestStaffListHidesDeactivatedByDefault(t *testing.T) {
	r := setupTest(t)

	_, env := doJSON(t, r, "POST", "/staff", map[string]interface{}{"name": "Temp"})
	var created models.Staff
	decodeData(t, env, &created)

	w, _ := doJSON(t, r, "DELETE", fmt.Sprintf("/staff/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, env = doJSON(t, r, "GET", "/staff", nil)
	var active []models.Staff
	decodeData(t, env, &active)
	for _, member := range active {
		assert.NotEqual(t, created.ID, member.ID)
	}

	_, env = doJSON(t, r, "GET", "/staff?active_only=false", nil)
	var all []models.Staff
	decodeData(t, env, &all)
	found := false
	for _, member := range all {
		if member.ID == created.ID {
			found = true
			assert.False(t, member.IsActive)
		}
	}
	assert.True(t, found)
}

func TestClockInClockOutFlow(t *testing.T) {
	r := setupTest(t)

	staff := models.Staff{Name: "Worker", IsActive: true, Role: "staff"}
	require.NoError(t, config.DB.Create(&staff).Error)

	w, env := doJSON(t, r, "POST", fmt.Sprintf("/staff/%d/clock-in", staff.ID), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var entry models.StaffTimeLog
	decodeData(t, env, &entry)
	assert.Nil(t, entry.ClockOut)

	_, env = doJSON(t, r, "GET", fmt.Sprintf("/staff/%d/clock-status", staff.ID), nil)
	var status ClockStatus
	decodeData(t, env, &status)
	require.NotNil(t, status.OpenLog)
	assert.Equal(t, entry.ID, status.OpenLog.ID)
	require.NotNil(t, status.FirstClockIn)
	assert.Nil(t, status.LastClockOut)

	w, env = doJSON(t, r, "POST", fmt.Sprintf("/time-logs/%d/clock-out", entry.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, env, &entry)
	require.NotNil(t, entry.ClockOut)

	// Closing a closed log is rejected.
	w, env = doJSON(t, r, "POST", fmt.Sprintf("/time-logs/%d/clock-out", entry.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "already closed")

	_, env = doJSON(t, r, "GET", fmt.Sprintf("/staff/%d/clock-status", staff.ID), nil)
	decodeData(t, env, &status)
	assert.Nil(t, status.OpenLog)
	require.NotNil(t, status.LastClockOut)
}

func TestClockInUnknownStaff(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "POST", "/staff/99999/clock-in", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
