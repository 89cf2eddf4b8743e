// controllers/auth.go
package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
)

var pinThrottle = utils.NewPinThrottle(5, 30*time.Second)

type VerifyPinInput struct {
	Pin string `json:"pin" binding:"required"`
}

// VerifyAdminPin checks the submitted PIN against the stored (hashed)
// admin_pin setting. Success hands back a token for the admin routes.
// Databases migrated from older releases may still hold a plaintext PIN;
// those are upgraded to a hash on the first successful verification.
func VerifyAdminPin(c *gin.Context) {
	var input VerifyPinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !pinThrottle.Allow() {
		utils.RespondWithError(c, http.StatusTooManyRequests, "Too many failed attempts, try again later")
		return
	}

	var setting models.Setting
	if err := config.DB.First(&setting, "key = ?", models.SettingAdminPin).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Admin PIN is not configured")
		return
	}

	var valid bool
	if utils.IsBcryptHash(setting.Value) {
		valid = utils.CheckPinHash(input.Pin, setting.Value)
	} else {
		valid = subtle.ConstantTimeCompare([]byte(input.Pin), []byte(setting.Value)) == 1
		if valid {
			if hashed, err := utils.HashPin(input.Pin); err == nil {
				config.DB.Model(&models.Setting{}).
					Where("key = ?", models.SettingAdminPin).
					Update("value", hashed)
			}
		}
	}

	if !valid {
		pinThrottle.Fail()
		utils.RespondWithData(c, http.StatusOK, gin.H{"valid": false})
		return
	}

	pinThrottle.Reset()

	token, err := utils.GenerateAdminToken()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"valid": true, "token": token})
}
