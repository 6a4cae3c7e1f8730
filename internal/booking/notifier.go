package booking

import "context"

// Notifier announces booking decisions. Failures are the implementation's to log.
type Notifier interface {
	BookingStatusChanged(ctx context.Context, event *Event, area *SlotArea, booking *Booking)
}

type nopNotifier struct{}

func (nopNotifier) BookingStatusChanged(context.Context, *Event, *SlotArea, *Booking) {}
