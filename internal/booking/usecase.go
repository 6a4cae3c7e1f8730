package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vtc-portal/internal/document"
	"vtc-portal/internal/validator"
)

var createMessages = validator.Messages{
	"vtcName":    "VTC name is required",
	"slotNumber": "Slot number must be at least 1",
}

type BookingUsecase struct {
	store    document.Store
	notifier Notifier
	log      zerolog.Logger

	newID func() string
}

func NewBookingUsecase(store document.Store, notifier Notifier, logger zerolog.Logger) *BookingUsecase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &BookingUsecase{
		store:    store,
		notifier: notifier,
		log:      logger.With().Str("component", "booking").Logger(),
		newID:    uuid.NewString,
	}
}

func (uc *BookingUsecase) load(ctx context.Context) (*EventsDocument, error) {
	doc := emptyEvents()
	if err := document.Load(ctx, uc.store, document.CollectionEvents, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListEvents returns every event in stored order.
func (uc *BookingUsecase) ListEvents(ctx context.Context) ([]Event, error) {
	doc, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Events, nil
}

// ListEventsWithBookings keeps only events where at least one slot area holds a booking.
func (uc *BookingUsecase) ListEventsWithBookings(ctx context.Context) ([]Event, error) {
	doc, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(doc.Events))
	for i := range doc.Events {
		if doc.Events[i].hasBookings() {
			events = append(events, doc.Events[i])
		}
	}
	return events, nil
}

// CreateBooking appends a pending booking to the slot area.
// A slot number already held by a booking that was not rejected cannot be requested again.
func (uc *BookingUsecase) CreateBooking(ctx context.Context, eventID, areaID string, input BookingInput) (*CreateResult, error) {
	if fieldErrors := validator.Validate(ctx, input, createMessages); fieldErrors != nil {
		return &CreateResult{
			Success: false,
			Message: "Invalid booking data.",
			Errors:  fieldErrors,
		}, nil
	}

	doc, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	event := doc.event(eventID)
	if event == nil || event.Slots == nil {
		return &CreateResult{Success: false, Message: msgEventNotFound, NotFound: true}, nil
	}
	area := event.area(areaID)
	if area == nil || area.Bookings == nil {
		return &CreateResult{Success: false, Message: msgAreaNotFound, NotFound: true}, nil
	}
	for _, b := range area.Bookings {
		if b.SlotNumber == input.SlotNumber && b.Status != StatusRejected {
			return &CreateResult{
				Success: false,
				Message: fmt.Sprintf("Slot #%d is already booked.", input.SlotNumber),
			}, nil
		}
	}

	booking := Booking{
		ID:         uc.newID(),
		VTCName:    input.VTCName,
		SlotNumber: input.SlotNumber,
		Status:     StatusPending,
	}
	area.Bookings = append(area.Bookings, booking)
	if err := document.Save(ctx, uc.store, document.CollectionEvents, doc); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("event_id", eventID).
		Str("area_id", areaID).
		Str("booking_id", booking.ID).
		Int("slot", booking.SlotNumber).
		Msg("booking requested")

	return &CreateResult{
		Success:   true,
		Message:   "Booking request submitted.",
		BookingID: booking.ID,
	}, nil
}

// resolve walks event, slot area and booking in that order and names the first level that misses.
// An event without a slots list or an area without a bookings list counts as missing.
func resolve(doc *EventsDocument, eventID, areaID, bookingID string) (*Event, *SlotArea, int, string) {
	event := doc.event(eventID)
	if event == nil || event.Slots == nil {
		return nil, nil, -1, msgEventNotFound
	}
	area := event.area(areaID)
	if area == nil || area.Bookings == nil {
		return nil, nil, -1, msgAreaNotFound
	}
	idx := area.bookingIndex(bookingID)
	if idx < 0 {
		return nil, nil, -1, msgBookingNotFound
	}
	return event, area, idx, ""
}

// UpdateBookingStatus persists any status value. Only approved, rejected and hold are announced.
func (uc *BookingUsecase) UpdateBookingStatus(ctx context.Context, eventID, areaID, bookingID string, newStatus Status) (*Result, error) {
	doc, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	event, area, idx, miss := resolve(doc, eventID, areaID, bookingID)
	if miss != "" {
		return &Result{Success: false, Message: miss, NotFound: true}, nil
	}

	booking := &area.Bookings[idx]
	booking.Status = newStatus
	if err := document.Save(ctx, uc.store, document.CollectionEvents, doc); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("event_id", eventID).
		Str("area_id", areaID).
		Str("booking_id", bookingID).
		Str("status", string(newStatus)).
		Msg("booking status updated")

	if newStatus.Notifies() {
		uc.notifier.BookingStatusChanged(ctx, event, area, booking)
	}

	return &Result{
		Success: true,
		Message: fmt.Sprintf("Booking status updated to %s.", newStatus),
	}, nil
}

// DeleteBooking drops the booking from its slot area, keeping the order of the rest.
func (uc *BookingUsecase) DeleteBooking(ctx context.Context, eventID, areaID, bookingID string) (*Result, error) {
	doc, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}

	_, area, idx, miss := resolve(doc, eventID, areaID, bookingID)
	if miss != "" {
		return &Result{Success: false, Message: miss, NotFound: true}, nil
	}

	area.Bookings = append(area.Bookings[:idx], area.Bookings[idx+1:]...)
	if err := document.Save(ctx, uc.store, document.CollectionEvents, doc); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("event_id", eventID).
		Str("area_id", areaID).
		Str("booking_id", bookingID).
		Msg("booking deleted")

	return &Result{Success: true, Message: "Booking has been deleted."}, nil
}
