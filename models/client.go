package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a service-providing tenant (a barbershop, salon, ...). Its slug is
// the public booking page key and must never change once appointments exist.
type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_user,where:deleted_at IS NULL"`

	Name string `gorm:"not null"`
	Bio  string
	Slug string `gorm:"not null;uniqueIndex:idx_client_slug,where:deleted_at IS NULL"`

	ClientTypeID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Public profile shown on the booking page (working hours, contact info).
	Profile JSONB `gorm:"type:jsonb;default:'{}'"`

	ClientType   *ClientType     `gorm:"foreignKey:ClientTypeID"`
	Services     []ClientService `gorm:"foreignKey:ClientID"`
	Availability []Availability  `gorm:"foreignKey:ClientID"`
	Appointments []Appointment   `gorm:"foreignKey:ClientID"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type ClientType struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"not null;uniqueIndex:idx_client_type_name,where:deleted_at IS NULL"`

	gorm.Model
}

func (ct *ClientType) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}

// Custom JSONB type for the client profile blob
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return errors.New("type assertion to []byte failed")
	}
}
