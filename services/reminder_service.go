// services/reminder_service.go
package services

import (
	"log"
	"time"

	"bookeasy-backend/models"
	"bookeasy-backend/timeslot"
	"bookeasy-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService emails customers the day before their appointment.
type ReminderService struct {
	db       *gorm.DB
	notifier *NotifyService
}

func NewReminderService(db *gorm.DB, notifier *NotifyService) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders processes every scheduled or confirmed appointment for
// tomorrow. Send failures are logged per appointment and do not stop the run.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))

	var appts []models.Appointment
	err := s.db.
		Preload("Customer").
		Preload("Client").
		Preload("ClientService.Service").
		Where("date = ? AND status IN ?", tomorrow,
			[]string{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Find(&appts).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	sent := 0
	for i := range appts {
		appt := &appts[i]
		if appt.Customer == nil || appt.Customer.Email == "" || appt.Client == nil {
			continue
		}
		serviceName := "Standard appointment"
		if appt.ClientService != nil && appt.ClientService.Service != nil {
			serviceName = appt.ClientService.Service.Name
		}
		details := BookingDetails{
			ClientName:   appt.Client.Name,
			CustomerName: appt.Customer.Name,
			Date:         appt.Date.Format("January 2, 2006"),
			Time:         appt.Time,
			ServiceName:  serviceName,
			Duration:     timeslot.EffectiveDuration(appt.DurationMinutes()),
		}
		if err := s.notifier.SendAppointmentReminder(appt.Customer.Email, details); err != nil {
			log.Printf("Failed to send reminder for appointment %s: %v", appt.ID, err)
			continue
		}
		sent++
	}

	log.Printf("Daily reminder processing completed, %d reminder(s) sent", sent)
}
