package discord

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"vtc-portal/internal/application"
	"vtc-portal/internal/booking"
)

type webhookPayload struct {
	Content    string                    `json:"content"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds"`
	Components []actionsRow              `json:"components"`
}

type actionsRow struct {
	Type       int `json:"type"`
	Components []struct {
		Type     int    `json:"type"`
		Style    int    `json:"style"`
		Label    string `json:"label"`
		CustomID string `json:"custom_id"`
	} `json:"components"`
}

type webhookRecorder struct {
	mu       sync.Mutex
	payloads []webhookPayload
	status   int
}

func (r *webhookRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, _ := io.ReadAll(req.Body)
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	r.mu.Lock()
	r.payloads = append(r.payloads, p)
	r.mu.Unlock()

	if r.status != 0 {
		w.WriteHeader(r.status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestNotifier(t *testing.T, rec *webhookRecorder) *Notifier {
	t.Helper()
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	n := NewNotifier(NewWebhookClient(srv.URL, srv.Client()), "", zerolog.Nop())
	n.now = func() time.Time { return testNow }
	return n
}

func TestWebhookClient_Execute(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		err := NewWebhookClient("  ", nil).Execute(context.Background(), &discordgo.WebhookParams{})
		if !errors.Is(err, ErrWebhookNotConfigured) {
			t.Errorf("Execute() error = %v, want ErrWebhookNotConfigured", err)
		}
	})

	t.Run("posts json", func(t *testing.T) {
		var gotMethod, gotType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotType = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		err := NewWebhookClient(srv.URL, srv.Client()).Execute(context.Background(), &discordgo.WebhookParams{Content: "hi"})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if gotMethod != http.MethodPost || gotType != "application/json" {
			t.Errorf("request = %s %s", gotMethod, gotType)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"message": "Invalid Webhook Token"}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		err := NewWebhookClient(srv.URL, srv.Client()).Execute(context.Background(), &discordgo.WebhookParams{})
		if err == nil || !strings.Contains(err.Error(), "401") {
			t.Errorf("Execute() error = %v, want status 401", err)
		}
	})
}

func TestNotifier_ApplicationSubmitted(t *testing.T) {
	rec := &webhookRecorder{}
	n := newTestNotifier(t, rec)

	n.ApplicationSubmitted(context.Background(), &application.Application{
		ID:            "TP-1234",
		Name:          "Arun",
		Email:         "arun@example.com",
		TruckersMPURL: "https://truckersmp.com/user/1",
	})

	if len(rec.payloads) != 1 {
		t.Fatalf("payloads = %d, want 1", len(rec.payloads))
	}
	p := rec.payloads[0]
	if p.Content != "New registration from Arun" {
		t.Errorf("content = %q", p.Content)
	}

	embed := p.Embeds[0]
	if embed.Title != "New VTC Registration - TP-1234" || embed.Color != ColorRegistration {
		t.Errorf("embed = %q / %d", embed.Title, embed.Color)
	}
	if embed.Footer == nil || embed.Footer.Text != "Tamil Pasanga VTC Registration" {
		t.Errorf("footer = %+v", embed.Footer)
	}
	if embed.Timestamp != "2025-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q", embed.Timestamp)
	}

	wantFields := []discordgo.MessageEmbedField{
		{Name: "Username", Value: "Arun", Inline: true},
		{Name: "Email", Value: "arun@example.com", Inline: true},
		{Name: "TruckersMP", Value: "https://truckersmp.com/user/1"},
		{Name: "TruckersHub", Value: "Not Provided"},
	}
	if len(embed.Fields) != len(wantFields) {
		t.Fatalf("fields = %d, want %d", len(embed.Fields), len(wantFields))
	}
	for i, want := range wantFields {
		if *embed.Fields[i] != want {
			t.Errorf("field[%d] = %+v, want %+v", i, *embed.Fields[i], want)
		}
	}

	if len(p.Components) != 1 || len(p.Components[0].Components) != 3 {
		t.Fatalf("components = %+v", p.Components)
	}
	wantButtons := []struct {
		label  string
		style  discordgo.ButtonStyle
		action string
	}{
		{"Accept", discordgo.SuccessButton, ActionAcceptApplication},
		{"Reject", discordgo.DangerButton, ActionRejectApplication},
		{"Accept for Interview", discordgo.PrimaryButton, ActionInterviewApplication},
	}
	for i, want := range wantButtons {
		got := p.Components[0].Components[i]
		if got.Label != want.label || got.Style != int(want.style) {
			t.Errorf("button[%d] = %+v", i, got)
		}
		items, err := DecodeCustomID(got.CustomID)
		if err != nil {
			t.Fatalf("DecodeCustomID() error = %v", err)
		}
		if items[CustomIDKey] != want.action || items[ApplicationIDKey] != "TP-1234" {
			t.Errorf("button[%d] custom id = %v", i, items)
		}
	}
}

func TestNotifier_ApplicationStatusChanged(t *testing.T) {
	tests := []struct {
		status    application.Status
		wantSent  bool
		wantTitle string
		wantColor int
		wantDesc  string
	}{
		{application.StatusAccepted, true, "Application Accepted: TP-1234", ColorGreen, "Congratulations to **Arun**! Their application has been accepted."},
		{application.StatusRejected, true, "Application Rejected: TP-1234", ColorRed, "Application for **Arun** has been rejected."},
		{application.StatusPending, false, "", 0, ""},
		{application.StatusInterview, false, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			rec := &webhookRecorder{}
			n := newTestNotifier(t, rec)

			n.ApplicationStatusChanged(context.Background(), &application.Application{ID: "TP-1234", Name: "Arun", Status: tt.status})

			if !tt.wantSent {
				if len(rec.payloads) != 0 {
					t.Errorf("payloads = %d, want 0", len(rec.payloads))
				}
				return
			}
			if len(rec.payloads) != 1 {
				t.Fatalf("payloads = %d, want 1", len(rec.payloads))
			}
			embed := rec.payloads[0].Embeds[0]
			if embed.Title != tt.wantTitle || embed.Color != tt.wantColor || embed.Description != tt.wantDesc {
				t.Errorf("embed = %q %d %q", embed.Title, embed.Color, embed.Description)
			}
			if len(embed.Fields) != 1 || embed.Fields[0].Name != "Applicant Name" || !embed.Fields[0].Inline {
				t.Errorf("fields = %+v", embed.Fields)
			}
			if embed.Footer.Text != "Tamil Pasanga VTC | Application Status Update" {
				t.Errorf("footer = %q", embed.Footer.Text)
			}
		})
	}
}

func TestNotifier_BookingStatusChanged(t *testing.T) {
	event := &booking.Event{ID: "convoy-1", Title: "Sunday Convoy"}
	area := &booking.SlotArea{ID: "area-a", AreaName: "Parking A", ImageURL: "https://cdn.example.com/a.png"}

	tests := []struct {
		status    booking.Status
		wantSent  bool
		wantTitle string
		wantColor int
		wantDesc  string
		wantImage bool
	}{
		{booking.StatusApproved, true, "Booking Approved: Alpha", ColorGreen,
			"The booking for **Alpha** for slot **#3** at event **Sunday Convoy** has been approved.", true},
		{booking.StatusRejected, true, "Booking Rejected: Alpha", ColorRed,
			"The booking for **Alpha** for slot **#3** at event **Sunday Convoy** has been rejected.", false},
		{booking.StatusHold, true, "Booking On Hold: Alpha", ColorOrange,
			"The booking for **Alpha** for slot **#3** at event **Sunday Convoy** has been put on hold.", false},
		{booking.StatusPending, false, "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			rec := &webhookRecorder{}
			n := newTestNotifier(t, rec)

			b := &booking.Booking{ID: "b1", VTCName: "Alpha", SlotNumber: 3, Status: tt.status}
			n.BookingStatusChanged(context.Background(), event, area, b)

			if !tt.wantSent {
				if len(rec.payloads) != 0 {
					t.Errorf("payloads = %d, want 0", len(rec.payloads))
				}
				return
			}
			if len(rec.payloads) != 1 {
				t.Fatalf("payloads = %d, want 1", len(rec.payloads))
			}
			embed := rec.payloads[0].Embeds[0]
			if embed.Title != tt.wantTitle || embed.Color != tt.wantColor || embed.Description != tt.wantDesc {
				t.Errorf("embed = %q %d %q", embed.Title, embed.Color, embed.Description)
			}
			if gotImage := embed.Image != nil && embed.Image.URL == area.ImageURL; gotImage != tt.wantImage {
				t.Errorf("image = %+v, want image %v", embed.Image, tt.wantImage)
			}
			if embed.Footer.Text != "Tamil Pasanga VTC | Slot Booking Update" {
				t.Errorf("footer = %q", embed.Footer.Text)
			}
		})
	}
}

func TestNotifier_FailuresAreSwallowed(t *testing.T) {
	rec := &webhookRecorder{status: http.StatusInternalServerError}
	n := newTestNotifier(t, rec)
	n.ApplicationStatusChanged(context.Background(), &application.Application{ID: "TP-1", Name: "x", Status: application.StatusAccepted})
	if len(rec.payloads) != 1 {
		t.Errorf("payloads = %d, want 1", len(rec.payloads))
	}

	unconfigured := NewNotifier(NewWebhookClient("", nil), "Other VTC", zerolog.Nop())
	unconfigured.ApplicationSubmitted(context.Background(), &application.Application{ID: "TP-1", Name: "x"})
}

func TestNotifier_CustomVTCName(t *testing.T) {
	rec := &webhookRecorder{}
	n := newTestNotifier(t, rec)
	n.vtcName = "Other VTC"

	n.BookingStatusChanged(context.Background(),
		&booking.Event{Title: "T"}, &booking.SlotArea{}, &booking.Booking{VTCName: "A", SlotNumber: 1, Status: booking.StatusHold})

	if got := rec.payloads[0].Embeds[0].Footer.Text; got != "Other VTC | Slot Booking Update" {
		t.Errorf("footer = %q", got)
	}
}
