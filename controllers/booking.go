// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"

	"bookeasy-backend/services"
	"bookeasy-backend/timeslot"
	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
)

var booking *services.BookingService

// InitBookingService wires the booking engine into the HTTP layer. Called
// once at startup (and by handler tests with their own database).
func InitBookingService(s *services.BookingService) {
	booking = s
}

type BookAppointmentInput struct {
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	ClientSlug string `json:"clientSlug" binding:"required"`
	ServiceID  string `json:"serviceId"`
}

// BookAppointment is the public booking endpoint.
func BookAppointment(c *gin.Context) {
	var input BookAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "All fields are required: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	result, err := booking.Book(c.Request.Context(), services.BookingRequest{
		ClientSlug: input.ClientSlug,
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		Time:       input.Time,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		IPAddress:  c.ClientIP(),
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Appointment booked successfully",
		"appointment": gin.H{
			"id":       result.Appointment.ID,
			"date":     result.Appointment.Date.Format(utils.DateLayout),
			"time":     result.Appointment.Time,
			"status":   result.Appointment.Status,
			"service":  result.ServiceName,
			"duration": result.Duration,
			"price":    result.Price,
		},
	})
}

// GetPublicAvailability serves the public booking page: free slots and active
// services for one provider and day.
func GetPublicAvailability(c *gin.Context) {
	slug := c.Query("client")
	date := c.Query("date")
	if slug == "" || date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Date and client are required")
		return
	}

	page, err := booking.FreeSlots(c.Request.Context(), slug, date)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client": gin.H{
			"id":      page.Client.ID,
			"name":    page.Client.Name,
			"bio":     page.Client.Bio,
			"slug":    page.Client.Slug,
			"profile": page.Client.Profile,
		},
		"availableSlots": page.AvailableSlots,
		"services":       page.Services,
	})
}

// respondBookingError maps the booking engine's error taxonomy onto HTTP
// statuses.
func respondBookingError(c *gin.Context, err error) {
	var overlap *services.OverlapError
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
	case errors.Is(err, services.ErrServiceNotAvailable):
		utils.RespondWithError(c, http.StatusBadRequest, "Service not available for this client")
	case errors.Is(err, services.ErrInsufficientAvailability):
		utils.RespondWithError(c, http.StatusBadRequest,
			"The selected time slot doesn't have enough availability for this service")
	case errors.As(err, &overlap):
		utils.RespondWithError(c, http.StatusConflict,
			"This time slot conflicts with an existing appointment")
	case errors.Is(err, services.ErrBookingConflict):
		utils.RespondWithError(c, http.StatusConflict,
			"This time slot was just booked by someone else, please try again")
	case errors.Is(err, services.ErrDuplicateSlot):
		utils.RespondWithError(c, http.StatusConflict,
			"This time slot is already marked as available")
	case errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrAppointmentNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCancelledTerminal):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, timeslot.ErrOffGrid):
		utils.RespondWithError(c, http.StatusBadRequest,
			"Availability slots must start on a half-hour boundary")
	case errors.Is(err, timeslot.ErrInvalidClock),
		errors.Is(err, timeslot.ErrPastMidnight),
		errors.Is(err, utils.ErrInvalidDate):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date or time format")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to process booking request")
	}
}
