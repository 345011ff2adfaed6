// controllers/availability.go
package controllers

import (
	"net/http"

	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authorizedClientUUID resolves which client the caller may act for, taking
// an optional explicit clientId (query or body) that only admins may use for
// someone else.
func authorizedClientUUID(c *gin.Context, requested string) (uuid.UUID, bool) {
	id, ok := utils.AuthorizedClientID(c, requested)
	if !ok {
		utils.RespondWithError(c, http.StatusForbidden, "Not authorized for this client")
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return uuid.Nil, false
	}
	return parsed, true
}

type SetAvailabilityInput struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	ClientID string `json:"clientId"`
}

// SetAvailability declares one open 30-minute slot.
func SetAvailability(c *gin.Context) {
	var input SetAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date and time are required")
		return
	}

	clientID, ok := authorizedClientUUID(c, input.ClientID)
	if !ok {
		return
	}

	slot, err := booking.SetAvailability(c.Request.Context(), clientID, input.Date, input.Time, c.ClientIP())
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Availability set successfully",
		"availability": slot,
	})
}

// GetAvailability lists a client's declared slots and booked start times for
// one day.
func GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Date is required")
		return
	}

	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	declared, booked, err := booking.AvailabilityForDate(c.Request.Context(), clientID, date)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"availability": declared,
		"bookedSlots":  booked,
	})
}

// DeleteAvailability revokes one declared slot.
func DeleteAvailability(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid slot ID format")
		return
	}

	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	if err := booking.RemoveAvailability(c.Request.Context(), clientID, slotID, c.ClientIP()); err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
