package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"vtc-portal/internal/application"
	"vtc-portal/internal/booking"
)

// embed colors
const (
	ColorRegistration = 3977201
	ColorGreen        = 5763719
	ColorRed          = 15548997
	ColorOrange       = 16753920
)

const DefaultVTCName = "Tamil Pasanga VTC"

var (
	_ application.Notifier = (*Notifier)(nil)
	_ booking.Notifier     = (*Notifier)(nil)
)

// Notifier turns application and booking events into webhook messages.
// Delivery is best-effort: failures are logged and never returned.
type Notifier struct {
	webhook *WebhookClient
	vtcName string
	log     zerolog.Logger
	now     func() time.Time
}

func NewNotifier(webhook *WebhookClient, vtcName string, logger zerolog.Logger) *Notifier {
	if vtcName == "" {
		vtcName = DefaultVTCName
	}
	return &Notifier{
		webhook: webhook,
		vtcName: vtcName,
		log:     logger.With().Str("component", "notifier").Logger(),
		now:     time.Now,
	}
}

func (n *Notifier) send(ctx context.Context, kind string, params *discordgo.WebhookParams) {
	err := n.webhook.Execute(ctx, params)
	switch {
	case errors.Is(err, ErrWebhookNotConfigured):
		n.log.Warn().Str("kind", kind).Msg("webhook url is not set, notification skipped")
	case err != nil:
		n.log.Error().Err(err).Str("kind", kind).Msg("failed to send notification")
	}
}

func (n *Notifier) timestamp() string {
	return n.now().UTC().Format(time.RFC3339)
}

func (n *Notifier) ApplicationSubmitted(ctx context.Context, app *application.Application) {
	params, err := n.newApplicationMessage(app)
	if err != nil {
		n.log.Error().Err(err).Str("application_id", app.ID).Msg("failed to build registration message")
		return
	}
	n.send(ctx, "application_submitted", params)
}

func (n *Notifier) ApplicationStatusChanged(ctx context.Context, app *application.Application) {
	params, ok := n.applicationStatusMessage(app)
	if !ok {
		return
	}
	n.send(ctx, "application_status", params)
}

func (n *Notifier) BookingStatusChanged(ctx context.Context, event *booking.Event, area *booking.SlotArea, b *booking.Booking) {
	params, ok := n.bookingStatusMessage(event, area, b)
	if !ok {
		return
	}
	n.send(ctx, "booking_status", params)
}

func (n *Notifier) newApplicationMessage(app *application.Application) (*discordgo.WebhookParams, error) {
	row, err := ReviewButtons(app.ID)
	if err != nil {
		return nil, err
	}

	return &discordgo.WebhookParams{
		Content: fmt.Sprintf("New registration from %s", app.Name),
		Embeds: []*discordgo.MessageEmbed{{
			Title:     fmt.Sprintf("New VTC Registration - %s", app.ID),
			Color:     ColorRegistration,
			Timestamp: n.timestamp(),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Username", Value: app.Name, Inline: true},
				{Name: "Email", Value: app.Email, Inline: true},
				{Name: "TruckersMP", Value: OrNotProvided(app.TruckersMPURL)},
				{Name: "TruckersHub", Value: OrNotProvided(app.TruckersHubURL)},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: n.vtcName + " Registration"},
		}},
		Components: []discordgo.MessageComponent{row},
	}, nil
}

// ReviewButtons is the Accept / Reject / Accept for Interview row attached to a new registration.
func ReviewButtons(applicationID string) (discordgo.ActionsRow, error) {
	buttons := []struct {
		label  string
		style  discordgo.ButtonStyle
		action string
	}{
		{"Accept", discordgo.SuccessButton, ActionAcceptApplication},
		{"Reject", discordgo.DangerButton, ActionRejectApplication},
		{"Accept for Interview", discordgo.PrimaryButton, ActionInterviewApplication},
	}

	components := make([]discordgo.MessageComponent, 0, len(buttons))
	for _, b := range buttons {
		customID, err := EncodeCustomID(map[string]string{
			CustomIDKey:      b.action,
			ApplicationIDKey: applicationID,
		})
		if err != nil {
			return discordgo.ActionsRow{}, err
		}
		components = append(components, discordgo.Button{
			Label:    b.label,
			Style:    b.style,
			CustomID: customID,
		})
	}
	return discordgo.ActionsRow{Components: components}, nil
}

func (n *Notifier) applicationStatusMessage(app *application.Application) (*discordgo.WebhookParams, bool) {
	var title, description string
	var color int

	switch app.Status {
	case application.StatusAccepted:
		title = fmt.Sprintf("Application Accepted: %s", app.ID)
		description = fmt.Sprintf("Congratulations to %s! Their application has been accepted.", FormatBold(app.Name))
		color = ColorGreen
	case application.StatusRejected:
		title = fmt.Sprintf("Application Rejected: %s", app.ID)
		description = fmt.Sprintf("Application for %s has been rejected.", FormatBold(app.Name))
		color = ColorRed
	default:
		return nil, false
	}

	return &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: description,
			Color:       color,
			Timestamp:   n.timestamp(),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Applicant Name", Value: app.Name, Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{Text: n.vtcName + " | Application Status Update"},
		}},
	}, true
}

func (n *Notifier) bookingStatusMessage(event *booking.Event, area *booking.SlotArea, b *booking.Booking) (*discordgo.WebhookParams, bool) {
	var title, verb string
	var color int

	switch b.Status {
	case booking.StatusApproved:
		title, verb, color = "Booking Approved", "has been approved", ColorGreen
	case booking.StatusRejected:
		title, verb, color = "Booking Rejected", "has been rejected", ColorRed
	case booking.StatusHold:
		title, verb, color = "Booking On Hold", "has been put on hold", ColorOrange
	default:
		return nil, false
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s: %s", title, b.VTCName),
		Description: fmt.Sprintf("The booking for %s for slot %s at event %s %s.",
			FormatBold(b.VTCName), FormatBold(fmt.Sprintf("#%d", b.SlotNumber)), FormatBold(event.Title), verb),
		Color:     color,
		Timestamp: n.timestamp(),
		Footer:    &discordgo.MessageEmbedFooter{Text: n.vtcName + " | Slot Booking Update"},
	}
	if b.Status == booking.StatusApproved && area != nil && area.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: area.ImageURL}
	}

	return &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}, true
}
