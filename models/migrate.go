package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every model in dependency
// order. Shared between startup and the test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&ClientType{},
		&Client{},
		&Service{},
		&ClientService{},
		&Availability{},
		&Customer{},
		&Appointment{},
		&AuditLog{},
	)
}
