package booking

import "vtc-portal/internal/document"

// The events document is rewritten whole, so every level keeps the fields it
// does not model.

type bookingFields Booking

func (b *Booking) UnmarshalJSON(data []byte) error {
	var fields bookingFields
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*b = Booking(fields)
	b.Extra = extra
	return nil
}

func (b Booking) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(bookingFields(b), b.Extra)
}

type slotAreaFields SlotArea

func (a *SlotArea) UnmarshalJSON(data []byte) error {
	var fields slotAreaFields
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*a = SlotArea(fields)
	a.Extra = extra
	return nil
}

func (a SlotArea) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(slotAreaFields(a), a.Extra)
}

type eventFields Event

func (e *Event) UnmarshalJSON(data []byte) error {
	var fields eventFields
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*e = Event(fields)
	e.Extra = extra
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(eventFields(e), e.Extra)
}

type eventsDocumentFields EventsDocument

func (d *EventsDocument) UnmarshalJSON(data []byte) error {
	fields := eventsDocumentFields(*d)
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*d = EventsDocument(fields)
	d.Extra = extra
	return nil
}

func (d EventsDocument) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(eventsDocumentFields(d), d.Extra)
}
