// controllers/client.go
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

type CreateClientInput struct {
	Username     string       `json:"username" binding:"required"`
	Password     string       `json:"password" binding:"required,min=8"`
	Email        string       `json:"email" binding:"required,email"`
	Name         string       `json:"name" binding:"required"`
	Bio          string       `json:"bio"`
	Slug         string       `json:"slug" binding:"required"`
	ClientTypeID string       `json:"clientTypeId" binding:"required"`
	Profile      models.JSONB `json:"profile"`
}

// CreateClient provisions a new provider: its login user and tenant record
// are created in one transaction.
func CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "All required fields must be provided: "+err.Error())
		return
	}

	if !utils.ValidateSlug(input.Slug) {
		utils.RespondWithError(c, http.StatusBadRequest, "Slug may only contain lowercase letters, digits and hyphens")
		return
	}

	typeID, err := uuid.Parse(input.ClientTypeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client type ID format")
		return
	}

	var existingUser models.User
	err = config.DB.Where("username = ? OR email = ?", input.Username, input.Email).
		First(&existingUser).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Username or email already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	var existingClient models.Client
	err = config.DB.Where("slug = ?", input.Slug).First(&existingClient).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "This slug is already in use")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	profile := input.Profile
	if profile == nil {
		profile = models.JSONB{}
	}

	var client models.Client
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
			Role:     models.RoleClient,
			IsActive: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		client = models.Client{
			UserID:       user.ID,
			Name:         input.Name,
			Bio:          input.Bio,
			Slug:         input.Slug,
			ClientTypeID: typeID,
			Profile:      profile,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		// Back-link so the JWT can carry the client id.
		return tx.Model(&user).Update("client_id", client.ID).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"client": client})
}

// GetClients lists all providers with their login users.
func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := config.DB.Preload("ClientType").Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClientDetails returns one provider with its offered services.
func GetClientDetails(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Preload("ClientType").Preload("Services.Service").
		Where("id = ?", clientID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client})
}
