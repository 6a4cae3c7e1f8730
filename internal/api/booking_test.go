package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"vtc-portal/internal/booking"
)

func TestListEvents(t *testing.T) {
	events := []booking.Event{{ID: "convoy-1", Title: "Convoy", Slots: []booking.SlotArea{}}}
	bookings := &mockBookingService{
		listEventsFunc: func(ctx context.Context) ([]booking.Event, error) {
			return events, nil
		},
		listEventsWithBookingsFunc: func(ctx context.Context) ([]booking.Event, error) {
			return nil, errors.New("boom")
		},
	}
	router := newTestRouter(&Routers{Bookings: bookings})

	rec := do(t, router, http.MethodGet, "/v1/events", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	got := decode[struct {
		Data []booking.Event `json:"data"`
	}](t, rec)
	if len(got.Data) != 1 || got.Data[0].ID != "convoy-1" {
		t.Errorf("events = %+v", got.Data)
	}

	if rec := do(t, router, http.MethodGet, "/v1/admin/bookings", nil, nil); rec.Code != http.StatusInternalServerError {
		t.Errorf("admin bookings status = %d, want 500", rec.Code)
	}
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		result   *booking.CreateResult
		err      error
		wantCode int
	}{
		{
			name:     "created",
			body:     map[string]any{"vtcName": "Echo", "slotNumber": 3},
			result:   &booking.CreateResult{Success: true, BookingID: "b-1"},
			wantCode: http.StatusCreated,
		},
		{
			name:     "slot taken",
			body:     map[string]any{"vtcName": "Echo", "slotNumber": 3},
			result:   &booking.CreateResult{Success: false, Message: "Slot #3 is already booked."},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown event",
			body:     map[string]any{"vtcName": "Echo", "slotNumber": 3},
			result:   &booking.CreateResult{Success: false, Message: "Event not found.", NotFound: true},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "storage fault",
			body:     map[string]any{"vtcName": "Echo", "slotNumber": 3},
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
		},
		{
			name:     "malformed json",
			body:     `{"slotNumber": "three"}`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &mockBookingService{
				createBookingFunc: func(ctx context.Context, eventID, areaID string, input booking.BookingInput) (*booking.CreateResult, error) {
					if eventID != "convoy-1" || areaID != "area-a" || input.VTCName != "Echo" || input.SlotNumber != 3 {
						t.Errorf("CreateBooking(%s, %s, %+v)", eventID, areaID, input)
					}
					return tt.result, tt.err
				},
			}
			router := newTestRouter(&Routers{Bookings: bookings})

			rec := do(t, router, http.MethodPost, "/v1/events/convoy-1/areas/area-a/bookings", tt.body, nil)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body)
			}
		})
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		result     *booking.Result
		wantCode   int
		wantStatus booking.Status
	}{
		{
			name:       "approved",
			body:       map[string]any{"status": "approved"},
			result:     &booking.Result{Success: true, Message: "Booking status updated to approved."},
			wantCode:   http.StatusOK,
			wantStatus: booking.StatusApproved,
		},
		{
			name:       "missing booking",
			body:       map[string]any{"status": "hold"},
			result:     &booking.Result{Success: false, Message: "Booking not found.", NotFound: true},
			wantCode:   http.StatusNotFound,
			wantStatus: booking.StatusHold,
		},
		{
			name:     "unknown status",
			body:     map[string]any{"status": "waitlisted"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got booking.Status
			bookings := &mockBookingService{
				updateBookingStatusFunc: func(ctx context.Context, eventID, areaID, bookingID string, newStatus booking.Status) (*booking.Result, error) {
					if eventID != "convoy-1" || areaID != "area-a" || bookingID != "b1" {
						t.Errorf("UpdateBookingStatus(%s, %s, %s)", eventID, areaID, bookingID)
					}
					got = newStatus
					return tt.result, nil
				},
			}
			router := newTestRouter(&Routers{Bookings: bookings})

			rec := do(t, router, http.MethodPatch, "/v1/admin/events/convoy-1/areas/area-a/bookings/b1/status", tt.body, nil)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body)
			}
			if got != tt.wantStatus {
				t.Errorf("newStatus = %q, want %q", got, tt.wantStatus)
			}
		})
	}
}

func TestDeleteBooking(t *testing.T) {
	results := map[string]*booking.Result{
		"b1": {Success: true, Message: "Booking has been deleted."},
		"b9": {Success: false, Message: "Booking not found.", NotFound: true},
	}
	bookings := &mockBookingService{
		deleteBookingFunc: func(ctx context.Context, eventID, areaID, bookingID string) (*booking.Result, error) {
			if res, ok := results[bookingID]; ok {
				return res, nil
			}
			return nil, errors.New("boom")
		},
	}
	router := newTestRouter(&Routers{Bookings: bookings})

	for id, want := range map[string]int{"b1": http.StatusOK, "b9": http.StatusNotFound, "bx": http.StatusInternalServerError} {
		rec := do(t, router, http.MethodDelete, "/v1/admin/events/convoy-1/areas/area-a/bookings/"+id, nil, nil)
		if rec.Code != want {
			t.Errorf("DELETE %s status = %d, want %d", id, rec.Code, want)
		}
	}
}
