package booking

import (
	"encoding/json"

	"vtc-portal/internal/document"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusHold     Status = "hold"
)

// Notifies reports whether moving a booking to s is announced.
func (s Status) Notifies() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusHold:
		return true
	}
	return false
}

type Booking struct {
	ID         string `json:"id"`
	VTCName    string `json:"vtcName"`
	SlotNumber int    `json:"slotNumber"`
	Status     Status `json:"status"`

	Extra document.Extra `json:"-"`
}

type SlotArea struct {
	ID       string    `json:"id"`
	AreaName string    `json:"areaName"`
	ImageURL string    `json:"imageUrl"`
	Bookings []Booking `json:"bookings"`

	Extra document.Extra `json:"-"`
}

// Event carries scheduling metadata as free-form values; only ID, Title and
// Slots take part in booking operations. Attendees is the route distance in km.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date,omitempty"`
	MeetupTime  string      `json:"meetupTime,omitempty"`
	Departure   string      `json:"departure,omitempty"`
	Arrival     string      `json:"arrival,omitempty"`
	Server      string      `json:"server,omitempty"`
	RouteMapURL string      `json:"routeMapUrl,omitempty"`
	ImageID     string      `json:"imageId,omitempty"`
	URL         string      `json:"url,omitempty"`
	Attendees   json.Number `json:"attendees,omitempty"`
	Slots       []SlotArea  `json:"slots"`

	Extra document.Extra `json:"-"`
}

// hasBookings reports whether any slot area of e holds a booking.
func (e *Event) hasBookings() bool {
	for _, area := range e.Slots {
		if len(area.Bookings) > 0 {
			return true
		}
	}
	return false
}

func (e *Event) area(id string) *SlotArea {
	for i := range e.Slots {
		if e.Slots[i].ID == id {
			return &e.Slots[i]
		}
	}
	return nil
}

func (a *SlotArea) bookingIndex(id string) int {
	for i := range a.Bookings {
		if a.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

type EventsDocument struct {
	Events []Event `json:"events"`

	Extra document.Extra `json:"-"`
}

func emptyEvents() *EventsDocument {
	return &EventsDocument{Events: []Event{}}
}

func (d *EventsDocument) event(id string) *Event {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}

// BookingInput is a slot request from another VTC.
type BookingInput struct {
	VTCName    string `json:"vtcName" validate:"required,max=100"`
	SlotNumber int    `json:"slotNumber" validate:"gte=1"`
}

// Result of an admin action. NotFound marks a missing event, slot area or booking.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	NotFound bool   `json:"-"`
}

type CreateResult struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	BookingID string              `json:"bookingId,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	NotFound  bool                `json:"-"`
}

const (
	msgEventNotFound   = "Event not found."
	msgAreaNotFound    = "Slot area not found."
	msgBookingNotFound = "Booking not found."
)
