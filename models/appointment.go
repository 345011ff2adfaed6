package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// ParseAppointmentStatus validates a status label from the API surface.
func ParseAppointmentStatus(s string) (string, bool) {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return s, true
	default:
		return "", false
	}
}

// Appointment occupies the half-open window [Time, Time+duration) on a
// client's calendar. The partial unique index backs the booking transaction:
// even if two racing requests both pass the in-process checks, the database
// rejects a second non-cancelled appointment at the same start slot.
type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_slot,where:status <> 'cancelled',priority:1"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Nil means a walk-in style booking with no named service; the default
	// 30-minute duration applies.
	ClientServiceID *uuid.UUID `gorm:"type:uuid;index"`

	Date   time.Time `gorm:"type:date;not null;uniqueIndex:idx_booking_slot,priority:2"`
	Time   string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_booking_slot,priority:3"`
	Status string    `gorm:"type:varchar(20);not null;default:'scheduled';index"`

	Client        *Client        `gorm:"foreignKey:ClientID"`
	Customer      *Customer      `gorm:"foreignKey:CustomerID"`
	ClientService *ClientService `gorm:"foreignKey:ClientServiceID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// DurationMinutes is the booked window length, falling back to zero when no
// service is attached so callers can apply the default-duration policy.
func (a *Appointment) DurationMinutes() int {
	if a.ClientService == nil {
		return 0
	}
	return a.ClientService.DurationMinutes()
}
