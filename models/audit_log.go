// models/audit_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key"`
	ClientID *uuid.UUID `gorm:"type:uuid;index"`

	Action    string `gorm:"not null"`
	Details   string `gorm:"type:text"`
	IPAddress string `gorm:"type:varchar(45)"`

	Client *Client `gorm:"foreignKey:ClientID"`

	CreatedAt time.Time
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
