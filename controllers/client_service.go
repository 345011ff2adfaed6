// controllers/client_service.go
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

type AssignServiceInput struct {
	ServiceID string  `json:"serviceId" binding:"required"`
	Price     float64 `json:"price" binding:"min=0"`
	Active    *bool   `json:"active"`
}

type UpdateClientServiceInput struct {
	Price  *float64 `json:"price"`
	Active *bool    `json:"active"`
}

// AssignService offers a catalog service through a client, with its price.
// A client may offer each service at most once.
func AssignService(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input AssignServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ?", serviceID).First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	clientService := models.ClientService{
		ClientID:  clientID,
		ServiceID: serviceID,
		Price:     input.Price,
		Active:    active,
	}
	if err := config.DB.Create(&clientService).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Client already offers this service")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to assign service")
		}
		return
	}

	clientService.Service = &service
	c.JSON(http.StatusCreated, clientService)
}

// GetClientServices lists the services a client offers.
func GetClientServices(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var clientServices []models.ClientService
	if err := config.DB.Preload("Service").
		Where("client_id = ?", clientID).Find(&clientServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve client services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": clientServices})
}

// UpdateClientService changes a client's price or active flag for a service.
func UpdateClientService(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateClientServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var clientService models.ClientService
	if err := config.DB.Where("client_id = ? AND service_id = ?", clientID, serviceID).
		First(&clientService).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client service not found")
		return
	}

	if input.Price != nil {
		clientService.Price = *input.Price
	}
	if input.Active != nil {
		clientService.Active = *input.Active
	}

	if err := config.DB.Save(&clientService).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client service")
		return
	}

	c.JSON(http.StatusOK, clientService)
}

// RemoveClientService withdraws a service from a client's offering.
func RemoveClientService(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}
	serviceID, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("client_id = ? AND service_id = ?", clientID, serviceID).
		Delete(&models.ClientService{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove client service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service removed from client"})
}
