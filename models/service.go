package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a catalog entry shared across clients. Duration is in minutes;
// zero means the booking engine falls back to a single 30-minute slot.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	Duration    int  // in minutes
	IsActive    bool `gorm:"default:true"`

	ClientServices []ClientService `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ClientService is a client-specific, priced offering of a catalog service.
// A client offers a given service at most once. The uniqueness constraint is
// scoped to live rows so a withdrawn offering can be assigned again.
type ClientService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_service,where:deleted_at IS NULL,priority:1"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_client_service,priority:2"`

	Price  float64 `gorm:"type:decimal(10,2);not null"`
	Active bool    `gorm:"default:true"`

	Client  *Client  `gorm:"foreignKey:ClientID"`
	Service *Service `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (cs *ClientService) BeforeCreate(tx *gorm.DB) (err error) {
	if cs.ID == uuid.Nil {
		cs.ID = uuid.New()
	}
	return
}

// DurationMinutes resolves the duration of the underlying service, or zero if
// the service association was not preloaded.
func (cs *ClientService) DurationMinutes() int {
	if cs.Service == nil {
		return 0
	}
	return cs.Service.Duration
}
