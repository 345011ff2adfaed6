// controllers/appointment.go
package controllers

import (
	"net/http"

	"bookeasy-backend/config"
	"bookeasy-backend/models"
	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAppointments lists a client's appointments, optionally filtered by date
// and status.
func GetAppointments(c *gin.Context) {
	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	query := config.DB.Preload("Customer").Preload("ClientService.Service").
		Where("client_id = ?", clientID)

	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		query = query.Where("date = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		if _, ok := models.ParseAppointmentStatus(status); !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc, time asc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// GetAppointment retrieves a single appointment owned by the client.
func GetAppointment(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Customer").Preload("ClientService.Service").
		Where("client_id = ? AND id = ?", clientID, apptID).
		First(&appointment).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

type UpdateAppointmentInput struct {
	Status   string `json:"status" binding:"required"`
	ClientID string `json:"clientId"`
}

// UpdateAppointmentStatus applies a status transition (confirm, complete,
// cancel).
func UpdateAppointmentStatus(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Status is required")
		return
	}

	status, valid := models.ParseAppointmentStatus(input.Status)
	if !valid {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment status")
		return
	}

	clientID, ok := authorizedClientUUID(c, input.ClientID)
	if !ok {
		return
	}

	appointment, err := booking.UpdateAppointmentStatus(c.Request.Context(), clientID, apptID, status, c.ClientIP())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// CancelAppointment cancels without deleting; the slot becomes bookable
// again. Cancelling twice is a no-op.
func CancelAppointment(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	if _, err := booking.CancelAppointment(c.Request.Context(), clientID, apptID, c.ClientIP()); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetAllAppointments lists appointments across all clients (admin view).
func GetAllAppointments(c *gin.Context) {
	query := config.DB.Preload("Customer").Preload("Client").Preload("ClientService.Service")

	if date := c.Query("date"); date != "" {
		parsed, err := utils.ParseDate(date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		query = query.Where("date = ?", parsed)
	}
	if status := c.Query("status"); status != "" {
		if _, ok := models.ParseAppointmentStatus(status); !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("date desc, time asc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
