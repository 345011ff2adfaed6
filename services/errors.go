package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Booking rejections are typed so the HTTP layer can map each to a status
// code deterministically.
var (
	// ErrClientNotFound: the booking-page slug resolves to no provider.
	ErrClientNotFound = errors.New("client not found")

	// ErrServiceNotAvailable: the requested service is not offered (or not
	// active) for this client.
	ErrServiceNotAvailable = errors.New("service not available for this client")

	// ErrInsufficientAvailability: at least one 30-minute unit the service
	// would occupy has not been declared open by the provider.
	ErrInsufficientAvailability = errors.New("the selected time slot doesn't have enough availability for this service")

	// ErrBookingConflict: the request passed the pre-checks but lost a race
	// at commit time. Retrying will usually surface an overlap instead.
	ErrBookingConflict = errors.New("booking conflicted with a concurrent request, please try again")

	// ErrDuplicateSlot: the (client, date, time) availability slot already
	// exists.
	ErrDuplicateSlot = errors.New("this time slot is already marked as available")

	ErrAppointmentNotFound = errors.New("appointment not found")

	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrCancelledTerminal: cancellation is terminal; a cancelled appointment
	// never transitions to another status.
	ErrCancelledTerminal = errors.New("cancelled appointments cannot change status")
)

// OverlapError rejects a booking whose window collides with an existing
// non-cancelled appointment, naming the appointment it collided with.
type OverlapError struct {
	AppointmentID uuid.UUID
	Start         string
	End           string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time slot conflicts with existing appointment %s (%s-%s)",
		e.AppointmentID, e.Start, e.End)
}
