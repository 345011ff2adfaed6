// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"bookeasy-backend/config"
	"bookeasy-backend/models"
	"bookeasy-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetClientStats summarizes one provider's dashboard numbers.
func GetClientStats(c *gin.Context) {
	clientID, ok := authorizedClientUUID(c, c.Query("clientId"))
	if !ok {
		return
	}

	today := utils.BeginningOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	var todayCount int64
	config.DB.Model(&models.Appointment{}).
		Where("client_id = ? AND date = ? AND status <> ?",
			clientID, today, models.AppointmentCancelled).
		Count(&todayCount)

	var upcomingCount int64
	config.DB.Model(&models.Appointment{}).
		Where("client_id = ? AND date >= ? AND status = ?",
			clientID, tomorrow, models.AppointmentScheduled).
		Count(&upcomingCount)

	var totalCustomers int64
	config.DB.Model(&models.Appointment{}).
		Where("client_id = ?", clientID).
		Distinct("customer_id").
		Count(&totalCustomers)

	// Revenue counts only completed appointments with a priced service.
	var completed []models.Appointment
	config.DB.Preload("ClientService").
		Where("client_id = ? AND status = ?", clientID, models.AppointmentCompleted).
		Find(&completed)

	revenue := 0.0
	for _, appt := range completed {
		if appt.ClientService != nil {
			revenue += appt.ClientService.Price
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments":    todayCount,
		"upcomingAppointments": upcomingCount,
		"totalCustomers":       totalCustomers,
		"totalRevenue":         revenue,
	})
}

// GetAdminStats summarizes platform-wide numbers for the admin dashboard.
func GetAdminStats(c *gin.Context) {
	var totalClients, totalServices, totalCustomers, totalAppointments int64
	config.DB.Model(&models.Client{}).Count(&totalClients)
	config.DB.Model(&models.Service{}).Count(&totalServices)
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)
	config.DB.Model(&models.Appointment{}).Count(&totalAppointments)

	today := utils.BeginningOfDay(time.Now())
	var todayAppointments int64
	config.DB.Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", today, models.AppointmentCancelled).
		Count(&todayAppointments)

	byStatus := gin.H{}
	for _, status := range []string{
		models.AppointmentScheduled,
		models.AppointmentConfirmed,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	} {
		var count int64
		config.DB.Model(&models.Appointment{}).Where("status = ?", status).Count(&count)
		byStatus[status] = count
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":      totalClients,
		"totalServices":     totalServices,
		"totalCustomers":    totalCustomers,
		"totalAppointments": totalAppointments,
		"todayAppointments": todayAppointments,
		"byStatus":          byStatus,
	})
}
