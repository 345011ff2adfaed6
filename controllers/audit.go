// controllers/audit.go
package controllers

import (
	"net/http"
	"strconv"

	"bookeasy-backend/config"
	"bookeasy-backend/models"
	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAuditLogs returns the paginated audit trail, newest first, optionally
// scoped to one client.
func GetAuditLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	if size < 1 || size > 200 {
		size = 50
	}

	query := config.DB.Model(&models.AuditLog{}).Preload("Client")
	if clientID := c.Query("clientId"); clientID != "" {
		parsed, err := uuid.Parse(clientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
			return
		}
		query = query.Where("client_id = ?", parsed)
	}

	var total int64
	query.Count(&total)

	var logs []models.AuditLog
	if err := query.Order("created_at desc").
		Limit(size).Offset((page - 1) * size).
		Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":     logs,
		"total":    total,
		"page":     page,
		"pageSize": size,
	})
}
