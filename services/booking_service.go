// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookeasy-backend/models"
	"bookeasy-backend/timeslot"
	"bookeasy-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService owns the availability computation and the booking
// conflict-resolution path. Everything else in the repository is plumbing
// around these methods.
type BookingService struct {
	db       *gorm.DB
	notifier *NotifyService
	audit    *AuditService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{db: db, audit: NewAuditService(db)}
}

// WithNotifier attaches the outbound notification dispatcher. Without one,
// bookings still commit; they just notify nobody (tests run this way).
func (s *BookingService) WithNotifier(n *NotifyService) *BookingService {
	s.notifier = n
	return s
}

type BookingRequest struct {
	ClientSlug string
	ServiceID  string // optional ClientService's catalog service id
	Date       string // YYYY-MM-DD
	Time       string // HH:MM
	Name       string
	Email      string
	Phone      string
	IPAddress  string
}

type BookingResult struct {
	Appointment *models.Appointment
	ServiceName string
	Duration    int
	Price       float64
}

// BookingPage is everything the public booking page needs for one day.
type BookingPage struct {
	Client         *models.Client
	AvailableSlots []string
	Services       []models.ClientService
}

// Book validates and commits one appointment. Pre-checks run first so callers
// get the specific rejection reason; the commit re-runs them inside a
// transaction that serializes per provider, so a request that raced past the
// pre-checks fails with ErrBookingConflict instead of double-booking.
func (s *BookingService) Book(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := timeslot.Parse(req.Time)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var client models.Client
	if err := db.Where("slug = ?", req.ClientSlug).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	// Resolve the priced offering; its catalog duration drives how many grid
	// slots the booking demands.
	var clientService *models.ClientService
	serviceName := "Standard appointment"
	duration := timeslot.DefaultDurationMinutes
	price := 0.0
	if req.ServiceID != "" {
		serviceUUID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			return nil, ErrServiceNotAvailable
		}
		var cs models.ClientService
		if err := db.Preload("Service").
			Where("client_id = ? AND service_id = ? AND active = ?", client.ID, serviceUUID, true).
			First(&cs).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServiceNotAvailable
			}
			return nil, err
		}
		clientService = &cs
		if cs.Service != nil && cs.Service.Name != "" {
			serviceName = cs.Service.Name
		}
		duration = timeslot.EffectiveDuration(cs.DurationMinutes())
		price = cs.Price
	}

	// Cross-midnight services are unsupported; the window must close within
	// the same calendar day.
	end, err := timeslot.AddMinutes(start, duration)
	if err != nil {
		return nil, err
	}
	required := timeslot.RequiredSlots(duration)

	if err := s.checkConflicts(db, client.ID, date, start, end, required); err != nil {
		return nil, err
	}

	// Customers are keyed by contact identity, created on first booking.
	var customer models.Customer
	if err := db.Where(&models.Customer{Email: req.Email, Phone: req.Phone}).
		Attrs(models.Customer{Name: req.Name}).
		FirstOrCreate(&customer).Error; err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ClientID:   client.ID,
		CustomerID: customer.ID,
		Date:       date,
		Time:       start.String(),
		Status:     models.AppointmentScheduled,
	}
	if clientService != nil {
		appt.ClientServiceID = &clientService.ID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Serialize bookings per provider. SQLite has no row locks; its
		// single-writer transactions already provide the same guarantee.
		if tx.Dialector.Name() == "postgres" {
			var locked models.Client
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").Take(&locked, "id = ?", client.ID).Error; err != nil {
				return err
			}
		}
		// Anything that invalidates the pre-checks now is a lost race, not a
		// user mistake. Infrastructure failures keep their own identity.
		if err := s.checkConflicts(tx, client.ID, date, start, end, required); err != nil {
			return raceError(err)
		}
		if err := tx.Create(appt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrBookingConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &client.ID, "New appointment booked",
		fmt.Sprintf("Customer: %s, Date: %s, Time: %s", req.Name, req.Date, req.Time), req.IPAddress)

	// Fire-and-forget: a failed notification never rolls back the booking.
	if s.notifier != nil {
		ownerEmail := ""
		var owner models.User
		if err := db.Where("client_id = ?", client.ID).First(&owner).Error; err == nil {
			ownerEmail = owner.Email
		}
		details := BookingDetails{
			ClientName:    client.Name,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			CustomerPhone: customer.Phone,
			Date:          date.Format("January 2, 2006"),
			Time:          appt.Time,
			ServiceName:   serviceName,
			Duration:      duration,
			Price:         price,
		}
		go s.notifier.DispatchBooking(customer.Email, customer.Phone, ownerEmail, details)
	}

	return &BookingResult{
		Appointment: appt,
		ServiceName: serviceName,
		Duration:    duration,
		Price:       price,
	}, nil
}

// raceError maps an in-transaction re-check rejection to ErrBookingConflict.
// Any other error (a failed query, a broken connection) passes through so it
// is not misreported as a lost race.
func raceError(err error) error {
	var overlap *OverlapError
	if errors.Is(err, ErrInsufficientAvailability) || errors.As(err, &overlap) {
		return ErrBookingConflict
	}
	return err
}

// checkConflicts applies the two rejection rules for the window
// [start, end): every 30-minute unit must be declared open, and no
// non-cancelled appointment's own window may intersect it.
func (s *BookingService) checkConflicts(tx *gorm.DB, clientID uuid.UUID, date time.Time, start, end timeslot.Clock, required int) error {
	var declared int64
	if err := tx.Model(&models.Availability{}).
		Where("client_id = ? AND date = ? AND time >= ? AND time < ?",
			clientID, date, start.String(), end.String()).
		Count(&declared).Error; err != nil {
		return err
	}
	if declared < int64(required) {
		return ErrInsufficientAvailability
	}

	var appts []models.Appointment
	if err := tx.Preload("ClientService.Service").
		Where("client_id = ? AND date = ? AND status <> ?",
			clientID, date, models.AppointmentCancelled).
		Find(&appts).Error; err != nil {
		return err
	}
	for i := range appts {
		aStart, aEnd, ok := appointmentWindow(&appts[i])
		if ok && timeslot.Overlaps(start, end, aStart, aEnd) {
			return &OverlapError{
				AppointmentID: appts[i].ID,
				Start:         aStart.String(),
				End:           aEnd.String(),
			}
		}
	}
	return nil
}

// appointmentWindow computes the half-open window an existing appointment
// occupies, applying the default-duration policy when it has no service.
func appointmentWindow(a *models.Appointment) (timeslot.Clock, timeslot.Clock, bool) {
	start, err := timeslot.Parse(a.Time)
	if err != nil {
		return "", "", false
	}
	end, err := timeslot.AddMinutes(start, timeslot.EffectiveDuration(a.DurationMinutes()))
	if err != nil {
		// Stored rows never wrap midnight; clamp just in case.
		end = timeslot.FromMinutes(timeslot.MinutesPerDay)
	}
	return start, end, true
}

// FreeSlots returns the public booking-page data for one provider and day:
// declared slots minus every grid unit covered by a non-cancelled
// appointment, plus the active services on offer.
func (s *BookingService) FreeSlots(ctx context.Context, slug, dateStr string) (*BookingPage, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var client models.Client
	if err := db.Where("slug = ?", slug).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	var declared []models.Availability
	if err := db.Where("client_id = ? AND date = ?", client.ID, date).
		Order("time asc").Find(&declared).Error; err != nil {
		return nil, err
	}

	var appts []models.Appointment
	if err := db.Preload("ClientService.Service").
		Where("client_id = ? AND date = ? AND status <> ?",
			client.ID, date, models.AppointmentCancelled).
		Find(&appts).Error; err != nil {
		return nil, err
	}

	consumed := make(map[timeslot.Clock]bool)
	for i := range appts {
		aStart, err := timeslot.Parse(appts[i].Time)
		if err != nil {
			continue
		}
		for _, slot := range timeslot.SlotsCovering(aStart, appts[i].DurationMinutes()) {
			consumed[slot] = true
		}
	}

	free := make([]string, 0, len(declared))
	for _, slot := range declared {
		t, err := timeslot.Parse(slot.Time)
		if err != nil {
			continue
		}
		if !consumed[t] {
			free = append(free, t.String())
		}
	}

	var offered []models.ClientService
	if err := db.Preload("Service").
		Where("client_id = ? AND active = ?", client.ID, true).
		Find(&offered).Error; err != nil {
		return nil, err
	}

	return &BookingPage{
		Client:         &client,
		AvailableSlots: free,
		Services:       offered,
	}, nil
}

// SetAvailability declares one open slot. Duplicate (client, date, time)
// declarations fail with ErrDuplicateSlot rather than silently no-opping.
func (s *BookingService) SetAvailability(ctx context.Context, clientID uuid.UUID, dateStr, timeStr, ip string) (*models.Availability, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	clock, err := timeslot.Parse(timeStr)
	if err != nil {
		return nil, err
	}
	if !clock.OnGrid() {
		return nil, timeslot.ErrOffGrid
	}

	db := s.db.WithContext(ctx)

	var existing models.Availability
	err = db.Where("client_id = ? AND date = ? AND time = ?", clientID, date, clock.String()).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateSlot
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	slot := &models.Availability{
		ClientID: clientID,
		Date:     date,
		Time:     clock.String(),
	}
	if err := db.Create(slot).Error; err != nil {
		// The unique index is the real arbiter under concurrency.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}

	s.audit.Record(ctx, &clientID, fmt.Sprintf("Added availability for %s at %s", dateStr, clock), "", ip)
	return slot, nil
}

// RemoveAvailability revokes a declared slot owned by the client.
func (s *BookingService) RemoveAvailability(ctx context.Context, clientID, slotID uuid.UUID, ip string) error {
	result := s.db.WithContext(ctx).
		Where("client_id = ? AND id = ?", clientID, slotID).
		Delete(&models.Availability{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	s.audit.Record(ctx, &clientID, fmt.Sprintf("Removed availability slot %s", slotID), "", ip)
	return nil
}

// AvailabilityForDate returns a client's declared slots for one day along
// with the start times already taken by non-cancelled appointments.
func (s *BookingService) AvailabilityForDate(ctx context.Context, clientID uuid.UUID, dateStr string) ([]models.Availability, []string, error) {
	date, err := utils.ParseDate(dateStr)
	if err != nil {
		return nil, nil, err
	}

	db := s.db.WithContext(ctx)

	var declared []models.Availability
	if err := db.Where("client_id = ? AND date = ?", clientID, date).
		Order("time asc").Find(&declared).Error; err != nil {
		return nil, nil, err
	}

	var appts []models.Appointment
	if err := db.Where("client_id = ? AND date = ? AND status <> ?",
		clientID, date, models.AppointmentCancelled).
		Find(&appts).Error; err != nil {
		return nil, nil, err
	}

	booked := make([]string, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, a.Time)
	}
	return declared, booked, nil
}

// UpdateAppointmentStatus applies a status transition. Cancellation is
// terminal: cancelling again is an idempotent no-op, while any other
// transition out of cancelled is rejected.
func (s *BookingService) UpdateAppointmentStatus(ctx context.Context, clientID, apptID uuid.UUID, status, ip string) (*models.Appointment, error) {
	db := s.db.WithContext(ctx)

	var appt models.Appointment
	if err := db.Preload("Customer").Preload("ClientService.Service").
		Where("client_id = ? AND id = ?", clientID, apptID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	if appt.Status == models.AppointmentCancelled {
		if status == models.AppointmentCancelled {
			return &appt, nil
		}
		return nil, ErrCancelledTerminal
	}

	if err := db.Model(&appt).Update("status", status).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &clientID, fmt.Sprintf("Updated appointment #%s status to %s", apptID, status), "", ip)
	return &appt, nil
}

// CancelAppointment marks an appointment cancelled, freeing its window for
// new bookings. Idempotent.
func (s *BookingService) CancelAppointment(ctx context.Context, clientID, apptID uuid.UUID, ip string) (*models.Appointment, error) {
	return s.UpdateAppointmentStatus(ctx, clientID, apptID, models.AppointmentCancelled, ip)
}
