package controllers

import (
	"net/http"
	"testing"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingMissingIsNull(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "GET", "/settings/no_such_key", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestSetSettingUpserts(t *testing.T) {
	r := setupTest(t)

	w, _ := doJSON(t, r, "PUT", "/settings/currency_symbol", map[string]interface{}{"value": "€"})
	require.Equal(t, http.StatusOK, w.Code)

	_, env := doJSON(t, r, "GET", "/settings/currency_symbol", nil)
	var value string
	decodeData(t, env, &value)
	assert.Equal(t, "€", value)

	// Second write to the same key replaces the value.
	doJSON(t, r, "PUT", "/settings/currency_symbol", map[string]interface{}{"value": "£"})
	_, env = doJSON(t, r, "GET", "/settings/currency_symbol", nil)
	decodeData(t, env, &value)
	assert.Equal(t, "£", value)
}

func TestSetAdminPinStoredHashed(t *testing.T) {
	r := setupTest(t)
	pinThrottle.Reset()

	w, _ := doJSON(t, r, "PUT", "/settings/admin_pin", map[string]interface{}{"value": "7777"})
	require.Equal(t, http.StatusOK, w.Code)

	var setting models.Setting
	require.NoError(t, config.DB.First(&setting, "key = ?", models.SettingAdminPin).Error)
	assert.True(t, utils.IsBcryptHash(setting.Value))
	assert.NotContains(t, setting.Value, "7777")

	// The new PIN verifies end to end.
	_, env := doJSON(t, r, "POST", "/auth/verify-pin", map[string]interface{}{"pin": "7777"})
	var result verifyResult
	decodeData(t, env, &result)
	assert.True(t, result.Valid)
}

func TestGetSettingsReturnsSeededDefaults(t *testing.T) {
	r := setupTest(t)

	_, env := doJSON(t, r, "GET", "/settings", nil)
	var settings map[string]string
	decodeData(t, env, &settings)

	assert.Equal(t, "VanisBeauty", settings[models.SettingBusinessName])
	assert.Equal(t, "$", settings[models.SettingCurrencySymbol])
	assert.Equal(t, "0", settings[models.SettingTaxRate])
	assert.Contains(t, settings, models.SettingAdminPin)
}
