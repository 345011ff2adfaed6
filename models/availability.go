package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is one declared-open 30-minute slot on a client's calendar.
// Date is normalized to midnight UTC and Time is a canonical "HH:MM" label, so
// the (client, date, time) uniqueness constraint compares apples to apples.
type Availability struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_avail_slot,priority:1"`
	Date     time.Time `gorm:"type:date;not null;uniqueIndex:idx_avail_slot,priority:2"`
	Time     string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_avail_slot,priority:3"`

	Client *Client `gorm:"foreignKey:ClientID"`

	CreatedAt time.Time
}

func (a *Availability) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
