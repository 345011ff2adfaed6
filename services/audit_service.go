// services/audit_service.go
package services

import (
	"context"
	"log"

	"bookeasy-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditService writes the audit trail around provider-scoped mutations. It is
// a side channel: a failed write is logged, never surfaced to the caller.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(ctx context.Context, clientID *uuid.UUID, action, details, ip string) {
	entry := models.AuditLog{
		ClientID:  clientID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("Failed to write audit log (%s): %v", action, err)
	}
}
