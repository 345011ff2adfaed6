package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is an unauthenticated booking-page visitor, keyed by (email, phone)
// at booking time.
type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key"`

	Name  string `gorm:"not null"`
	Email string `gorm:"not null;index:idx_customer_contact,priority:1"`
	Phone string `gorm:"not null;index:idx_customer_contact,priority:2"`

	Appointments []Appointment `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
