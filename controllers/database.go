// controllers/database.go
package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BackupInput struct {
	Path string `json:"path"`
}

type RestoreInput struct {
	Path string `json:"path" binding:"required"`
}

// BackupDatabase writes a full snapshot to the requested path, or to a
// timestamped file in the data directory when no path is given.
func BackupDatabase(c *gin.Context) {
	// The body is optional; an absent path falls back to the data directory.
	var input BackupInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	dest := input.Path
	if dest == "" {
		name := fmt.Sprintf("pos-backup-%s-%s.db",
			time.Now().Format("2006-01-02"), uuid.NewString()[:8])
		dest = filepath.Join(config.DataDir(), name)
	}

	if err := config.Backup(dest); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Backup failed: "+err.Error())
		return
	}

	utils.RespondWithData(c, http.StatusOK, gin.H{"path": dest})
}

// RestoreDatabase swaps the live database with a backup file; the previous
// live file is rolled back if the backup does not open cleanly.
func RestoreDatabase(c *gin.Context) {
	var input RestoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := config.Restore(input.Path); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Restore failed: "+err.Error())
		return
	}

	utils.RespondOK(c)
}
