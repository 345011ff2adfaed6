package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"bookeasy-backend/models"
	"bookeasy-backend/timeslot"
	"bookeasy-backend/utils"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// SQLite serializes writers anyway; a single connection keeps the shared
	// in-memory database from returning busy errors under the race tests.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedClient(t *testing.T, db *gorm.DB, slug string) *models.Client {
	t.Helper()

	ct := models.ClientType{Name: "Barbershop " + slug}
	if err := db.Create(&ct).Error; err != nil {
		t.Fatalf("seed client type: %v", err)
	}
	client := models.Client{
		UserID:       uuid.New(),
		Name:         "Test Shop",
		Slug:         slug,
		ClientTypeID: ct.ID,
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return &client
}

func seedService(t *testing.T, db *gorm.DB, clientID uuid.UUID, name string, duration int, price float64) *models.ClientService {
	t.Helper()

	svc := models.Service{Name: name, Duration: duration, IsActive: true}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	cs := models.ClientService{
		ClientID:  clientID,
		ServiceID: svc.ID,
		Price:     price,
		Active:    true,
	}
	if err := db.Create(&cs).Error; err != nil {
		t.Fatalf("seed client service: %v", err)
	}
	return &cs
}

func declareSlots(t *testing.T, db *gorm.DB, clientID uuid.UUID, dateStr string, times ...string) {
	t.Helper()

	date, err := utils.ParseDate(dateStr)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	for _, tm := range times {
		slot := models.Availability{ClientID: clientID, Date: date, Time: tm}
		if err := db.Create(&slot).Error; err != nil {
			t.Fatalf("declare slot %s: %v", tm, err)
		}
	}
}

func TestBookSucceedsWhenAllSlotsOpen(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "scissor-sharp")
	cs := seedService(t, db, client.ID, "Haircut and beard trim", 60, 45)
	declareSlots(t, db, client.ID, "2026-09-01", "09:00", "09:30")

	svc := NewBookingService(db)
	res, err := svc.Book(context.Background(), BookingRequest{
		ClientSlug: "scissor-sharp",
		ServiceID:  cs.ServiceID.String(),
		Date:       "2026-09-01",
		Time:       "09:00",
		Name:       "Ada",
		Email:      "ada@example.com",
		Phone:      "+15550001111",
	})
	if err != nil {
		t.Fatalf("Book returned error: %v", err)
	}
	if res.Duration != 60 {
		t.Errorf("Duration = %d, want 60", res.Duration)
	}
	if res.Appointment.Status != models.AppointmentScheduled {
		t.Errorf("Status = %q, want scheduled", res.Appointment.Status)
	}

	var count int64
	db.Model(&models.Appointment{}).Where("client_id = ?", client.ID).Count(&count)
	if count != 1 {
		t.Errorf("persisted appointments = %d, want 1", count)
	}
}

func TestBookRejectsPartialWindow(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "fade-factory")
	cs := seedService(t, db, client.ID, "Color treatment", 60, 80)
	declareSlots(t, db, client.ID, "2026-09-01", "09:00", "09:30")

	svc := NewBookingService(db)
	// 09:30 + 60min needs 10:00 declared too.
	_, err := svc.Book(context.Background(), BookingRequest{
		ClientSlug: "fade-factory",
		ServiceID:  cs.ServiceID.String(),
		Date:       "2026-09-01",
		Time:       "09:30",
		Name:       "Ben",
		Email:      "ben@example.com",
		Phone:      "+15550002222",
	})
	if !errors.Is(err, ErrInsufficientAvailability) {
		t.Fatalf("err = %v, want ErrInsufficientAvailability", err)
	}
}

func TestBookRejectsOverlappingAppointment(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "clip-joint")
	declareSlots(t, db, client.ID, "2026-09-01", "10:00", "10:30", "11:00")

	date, _ := utils.ParseDate("2026-09-01")
	customer := models.Customer{Name: "Cara", Email: "cara@example.com", Phone: "+15550003333"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	existing := models.Appointment{
		ClientID:   client.ID,
		CustomerID: customer.ID,
		Date:       date,
		Time:       "10:00",
		Status:     models.AppointmentConfirmed,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	svc := NewBookingService(db)
	// 10:15-10:45 intersects the confirmed 10:00-10:30 window.
	_, err := svc.Book(context.Background(), BookingRequest{
		ClientSlug: "clip-joint",
		Date:       "2026-09-01",
		Time:       "10:15",
		Name:       "Dan",
		Email:      "dan@example.com",
		Phone:      "+15550004444",
	})
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("err = %v, want *OverlapError", err)
	}
	if overlap.AppointmentID != existing.ID {
		t.Errorf("conflicting appointment = %s, want %s", overlap.AppointmentID, existing.ID)
	}
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "shear-genius")
	declareSlots(t, db, client.ID, "2026-09-01", "11:00")

	svc := NewBookingService(db)
	ctx := context.Background()

	first, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "shear-genius",
		Date:       "2026-09-01",
		Time:       "11:00",
		Name:       "Eve",
		Email:      "eve@example.com",
		Phone:      "+15550005555",
	})
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}

	if _, err := svc.CancelAppointment(ctx, client.ID, first.Appointment.ID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	second, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "shear-genius",
		Date:       "2026-09-01",
		Time:       "11:00",
		Name:       "Finn",
		Email:      "finn@example.com",
		Phone:      "+15550006666",
	})
	if err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
	if second.Appointment.ID == first.Appointment.ID {
		t.Error("rebooking reused the cancelled appointment row")
	}

	var active int64
	db.Model(&models.Appointment{}).
		Where("client_id = ? AND status <> ?", client.ID, models.AppointmentCancelled).
		Count(&active)
	if active != 1 {
		t.Errorf("active appointments = %d, want 1", active)
	}
}

func TestSetAvailabilityRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "mane-street")

	svc := NewBookingService(db)
	ctx := context.Background()

	if _, err := svc.SetAvailability(ctx, client.ID, "2026-09-02", "9:00", ""); err != nil {
		t.Fatalf("first declare: %v", err)
	}
	// Same slot again, canonical spelling this time.
	_, err := svc.SetAvailability(ctx, client.ID, "2026-09-02", "09:00", "")
	if !errors.Is(err, ErrDuplicateSlot) {
		t.Fatalf("err = %v, want ErrDuplicateSlot", err)
	}
}

func TestSetAvailabilityRejectsOffGridTime(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "off-grid")

	svc := NewBookingService(db)
	_, err := svc.SetAvailability(context.Background(), client.ID, "2026-09-02", "09:15", "")
	if !errors.Is(err, timeslot.ErrOffGrid) {
		t.Fatalf("err = %v, want ErrOffGrid", err)
	}
}

func TestRemoveAvailabilityUnknownSlot(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "buzz-stop")

	svc := NewBookingService(db)
	err := svc.RemoveAvailability(context.Background(), client.ID, uuid.New(), "")
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("err = %v, want ErrSlotNotFound", err)
	}
}

func TestCancellationIsTerminalAndIdempotent(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "the-chair")
	declareSlots(t, db, client.ID, "2026-09-01", "14:00")

	svc := NewBookingService(db)
	ctx := context.Background()

	res, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "the-chair",
		Date:       "2026-09-01",
		Time:       "14:00",
		Name:       "Gil",
		Email:      "gil@example.com",
		Phone:      "+15550007777",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	apptID := res.Appointment.ID

	if _, err := svc.CancelAppointment(ctx, client.ID, apptID, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// Cancelling again is a no-op, not an error.
	if _, err := svc.CancelAppointment(ctx, client.ID, apptID, ""); err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	// Any other transition out of cancelled is rejected.
	_, err = svc.UpdateAppointmentStatus(ctx, client.ID, apptID, models.AppointmentConfirmed, "")
	if !errors.Is(err, ErrCancelledTerminal) {
		t.Fatalf("err = %v, want ErrCancelledTerminal", err)
	}
}

func TestFreeSlotsSubtractsWholeWindow(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "combover")
	cs := seedService(t, db, client.ID, "Full restyle", 60, 120)
	declareSlots(t, db, client.ID, "2026-09-01", "09:00", "09:30", "10:00", "10:30")

	svc := NewBookingService(db)
	ctx := context.Background()

	if _, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "combover",
		ServiceID:  cs.ServiceID.String(),
		Date:       "2026-09-01",
		Time:       "09:00",
		Name:       "Hana",
		Email:      "hana@example.com",
		Phone:      "+15550008888",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	page, err := svc.FreeSlots(ctx, "combover", "2026-09-01")
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	// The 60-minute booking consumes both 09:00 and 09:30.
	want := []string{"10:00", "10:30"}
	if len(page.AvailableSlots) != len(want) {
		t.Fatalf("AvailableSlots = %v, want %v", page.AvailableSlots, want)
	}
	for i, slot := range want {
		if page.AvailableSlots[i] != slot {
			t.Errorf("AvailableSlots[%d] = %q, want %q", i, page.AvailableSlots[i], slot)
		}
	}
}

func TestFreeSlotsSubtractsOffGridBooking(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "quarter-past")
	declareSlots(t, db, client.ID, "2026-09-01", "10:00", "10:30", "11:00")

	svc := NewBookingService(db)
	ctx := context.Background()

	// Off-grid start: the 10:15-10:45 window touches both the 10:00 and
	// 10:30 units.
	if _, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "quarter-past",
		Date:       "2026-09-01",
		Time:       "10:15",
		Name:       "Jo",
		Email:      "jo@example.com",
		Phone:      "+15550010000",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	page, err := svc.FreeSlots(ctx, "quarter-past", "2026-09-01")
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(page.AvailableSlots) != 1 || page.AvailableSlots[0] != "11:00" {
		t.Fatalf("AvailableSlots = %v, want [11:00]", page.AvailableSlots)
	}
}

func TestRaceErrorMapping(t *testing.T) {
	if !errors.Is(raceError(ErrInsufficientAvailability), ErrBookingConflict) {
		t.Error("re-check availability rejection should map to ErrBookingConflict")
	}
	overlap := &OverlapError{AppointmentID: uuid.New(), Start: "10:00", End: "10:30"}
	if !errors.Is(raceError(overlap), ErrBookingConflict) {
		t.Error("re-check overlap rejection should map to ErrBookingConflict")
	}
	dbErr := errors.New("connection reset by peer")
	if got := raceError(dbErr); got != dbErr {
		t.Errorf("infrastructure error was rewritten to %v", got)
	}
}

func TestConcurrentBookingsOneWinner(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "double-cut")
	declareSlots(t, db, client.ID, "2026-09-01", "15:00")

	svc := NewBookingService(db)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(ctx, BookingRequest{
				ClientSlug: "double-cut",
				Date:       "2026-09-01",
				Time:       "15:00",
				Name:       fmt.Sprintf("Racer %d", i),
				Email:      fmt.Sprintf("racer%d@example.com", i),
				Phone:      fmt.Sprintf("+1555000%04d", i),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful bookings = %d (errors: %v), want exactly 1", succeeded, errs)
	}

	var count int64
	db.Model(&models.Appointment{}).
		Where("client_id = ? AND status <> ?", client.ID, models.AppointmentCancelled).
		Count(&count)
	if count != 1 {
		t.Errorf("persisted active appointments = %d, want 1", count)
	}
}

func TestBookRejectsUnknownClientAndBadInput(t *testing.T) {
	db := openTestDB(t)
	seedClient(t, db, "known-shop")

	svc := NewBookingService(db)
	ctx := context.Background()

	_, err := svc.Book(ctx, BookingRequest{
		ClientSlug: "ghost-shop", Date: "2026-09-01", Time: "09:00",
		Name: "Ivy", Email: "ivy@example.com", Phone: "+15550009999",
	})
	if !errors.Is(err, ErrClientNotFound) {
		t.Errorf("unknown slug: err = %v, want ErrClientNotFound", err)
	}

	_, err = svc.Book(ctx, BookingRequest{
		ClientSlug: "known-shop", Date: "09/01/2026", Time: "09:00",
		Name: "Ivy", Email: "ivy@example.com", Phone: "+15550009999",
	})
	if !errors.Is(err, utils.ErrInvalidDate) {
		t.Errorf("bad date: err = %v, want ErrInvalidDate", err)
	}

	_, err = svc.Book(ctx, BookingRequest{
		ClientSlug: "known-shop", Date: "2026-09-01", Time: "25:00",
		Name: "Ivy", Email: "ivy@example.com", Phone: "+15550009999",
	})
	if err == nil {
		t.Error("bad time: expected an error")
	}

	_, err = svc.Book(ctx, BookingRequest{
		ClientSlug: "known-shop", ServiceID: uuid.NewString(),
		Date: "2026-09-01", Time: "09:00",
		Name: "Ivy", Email: "ivy@example.com", Phone: "+15550009999",
	})
	if !errors.Is(err, ErrServiceNotAvailable) {
		t.Errorf("unknown service: err = %v, want ErrServiceNotAvailable", err)
	}
}
