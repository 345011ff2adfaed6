// controllers/client_type.go
package controllers

import (
	"errors"
	"net/http"

	"bookeasy-backend/config"
	"bookeasy-backend/models"
	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientTypeInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateClientType(c *gin.Context) {
	var input ClientTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	clientType := models.ClientType{Name: input.Name}
	if err := config.DB.Create(&clientType).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Client type already exists")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client type")
		}
		return
	}

	c.JSON(http.StatusCreated, clientType)
}

func GetClientTypes(c *gin.Context) {
	var types []models.ClientType
	if err := config.DB.Order("name asc").Find(&types).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve client types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientTypes": types})
}

func UpdateClientType(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client type ID format")
		return
	}

	var input ClientTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Name is required")
		return
	}

	var clientType models.ClientType
	if err := config.DB.Where("id = ?", typeID).First(&clientType).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client type not found")
		return
	}

	clientType.Name = input.Name
	if err := config.DB.Save(&clientType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client type")
		return
	}

	c.JSON(http.StatusOK, clientType)
}

func DeleteClientType(c *gin.Context) {
	typeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client type ID format")
		return
	}

	var inUse int64
	config.DB.Model(&models.Client{}).Where("client_type_id = ?", typeID).Count(&inUse)
	if inUse > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Client type is in use")
		return
	}

	result := config.DB.Where("id = ?", typeID).Delete(&models.ClientType{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client type")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client type deleted successfully"})
}
