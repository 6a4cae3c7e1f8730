package handler

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"vtc-portal/internal/application"
	"vtc-portal/internal/discord"
)

const (
	statusCommandName = "status"
	statusArgName     = "id"
)

const (
	msgUnexpectedError    = "An unexpected error occurred."
	msgInterviewAvailable = "Interview scheduling is not available yet. Use Accept or Reject once the interview is done."
)

type applicationReviewer interface {
	UpdateStatus(ctx context.Context, id string, newStatus application.Status, role string) (*application.Result, error)
}

type applicationStatusReader interface {
	GetStatus(ctx context.Context, id string) application.StatusResult
}

type customIDInteractionCommand struct {
	customID string
}

func (command *customIDInteractionCommand) InteractionType() discordgo.InteractionType {
	return discordgo.InteractionMessageComponent
}

func (command *customIDInteractionCommand) InteractionID() string {
	return command.customID
}

func (command *customIDInteractionCommand) MatchInteractionID(interactionID string) bool {
	items, err := discord.DecodeCustomID(interactionID)
	if err != nil {
		return false
	}
	return items[discord.CustomIDKey] == command.customID
}

func (command *customIDInteractionCommand) applicationID(interaction *discordgo.Interaction) (string, error) {
	items, err := discord.DecodeCustomID(interaction.MessageComponentData().CustomID)
	if err != nil {
		return "", err
	}
	id, ok := items[discord.ApplicationIDKey]
	if !ok || id == "" {
		return "", fmt.Errorf("custom id has no %s", discord.ApplicationIDKey)
	}
	return id, nil
}

// reviewApplicationCommand handles the Accept and Reject buttons of a registration message.
type reviewApplicationCommand struct {
	customIDInteractionCommand
	service applicationReviewer
	status  application.Status
	log     zerolog.Logger
}

func NewAcceptApplicationCommand(service applicationReviewer, logger zerolog.Logger) *reviewApplicationCommand {
	return &reviewApplicationCommand{
		customIDInteractionCommand: customIDInteractionCommand{customID: discord.ActionAcceptApplication},
		service:                    service,
		status:                     application.StatusAccepted,
		log:                        logger,
	}
}

func NewRejectApplicationCommand(service applicationReviewer, logger zerolog.Logger) *reviewApplicationCommand {
	return &reviewApplicationCommand{
		customIDInteractionCommand: customIDInteractionCommand{customID: discord.ActionRejectApplication},
		service:                    service,
		status:                     application.StatusRejected,
		log:                        logger,
	}
}

func (command *reviewApplicationCommand) Handle(session *discordgo.Session, interaction *discordgo.Interaction) error {
	return command.handle(session, interaction)
}

func (command *reviewApplicationCommand) handle(responder interactionResponder, interaction *discordgo.Interaction) error {
	// ACK within 3 seconds; the status update also waits on the webhook.
	err := responder.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return err
	}

	applicationID, err := command.applicationID(interaction)
	if err != nil {
		command.editResponse(responder, interaction, msgUnexpectedError)
		return err
	}

	reviewer := actorID(interaction)
	command.log.Info().
		Str("application_id", applicationID).
		Str("reviewer", reviewer).
		Str("status", string(command.status)).
		Msg("application review button pressed")

	ctx, cancel := createContextWithTimeout()
	defer cancel()

	result, err := command.service.UpdateStatus(ctx, applicationID, command.status, application.DefaultRole)
	if err != nil {
		command.editResponse(responder, interaction, msgUnexpectedError)
		return err
	}

	command.editResponse(responder, interaction, result.Message)
	if !result.Success {
		return nil
	}

	if reviewer != "" {
		_, err = responder.FollowupMessageCreate(interaction, false, &discordgo.WebhookParams{
			Content: fmt.Sprintf("%s marked application %s as %s.",
				discord.FormatMention(reviewer), discord.FormatBold(applicationID), command.status),
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		})
		if err != nil {
			command.log.Warn().Err(err).Str("application_id", applicationID).Msg("failed to post review follow-up")
		}
	}
	return nil
}

func (command *reviewApplicationCommand) editResponse(responder interactionResponder, interaction *discordgo.Interaction, message string) {
	_, err := responder.InteractionResponseEdit(interaction, &discordgo.WebhookEdit{
		Content: ptr(message),
	})
	if err != nil {
		command.log.Warn().Err(err).Msg("failed to edit interaction response")
	}
}

// interviewApplicationCommand answers the Accept for Interview button. Interview
// is a reserved status with no transition, so nothing is persisted.
type interviewApplicationCommand struct {
	customIDInteractionCommand
}

func NewInterviewApplicationCommand() *interviewApplicationCommand {
	return &interviewApplicationCommand{
		customIDInteractionCommand: customIDInteractionCommand{customID: discord.ActionInterviewApplication},
	}
}

func (command *interviewApplicationCommand) Handle(session *discordgo.Session, interaction *discordgo.Interaction) error {
	return command.handle(session, interaction)
}

func (command *interviewApplicationCommand) handle(responder interactionResponder, interaction *discordgo.Interaction) error {
	return respondEphemeral(responder, interaction, &discordgo.InteractionResponseData{
		Content: msgInterviewAvailable,
	})
}

// statusSlashCommand is /status id:<TP-NNNN> for applicants.
type statusSlashCommand struct {
	baseSlashCommand
	service applicationStatusReader
}

func NewStatusSlashCommand(service applicationStatusReader) *statusSlashCommand {
	return &statusSlashCommand{
		service: service,
	}
}

func (command *statusSlashCommand) CreateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        statusCommandName,
		Description: "Check the status of your VTC application.",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        statusArgName,
				Description: "Application ID, e.g. TP-1234",
				Required:    true,
				MinLength:   ptr(7),
				MaxLength:   7,
			},
		},
	}
}

func (command *statusSlashCommand) InteractionType() discordgo.InteractionType {
	return discordgo.InteractionApplicationCommand
}

func (command *statusSlashCommand) InteractionID() string {
	return statusCommandName
}

func (command *statusSlashCommand) MatchInteractionID(interactionID string) bool {
	return command.InteractionID() == interactionID
}

func (command *statusSlashCommand) Handle(session *discordgo.Session, interaction *discordgo.Interaction) error {
	return command.handle(session, interaction)
}

func (command *statusSlashCommand) handle(responder interactionResponder, interaction *discordgo.Interaction) error {
	optionMap := command.getOptionMap(interaction)
	opt, ok := optionMap[statusArgName]
	if !ok || opt == nil {
		return fmt.Errorf("required option %q not found", statusArgName)
	}

	ctx, cancel := createContextWithTimeout()
	defer cancel()

	result := command.service.GetStatus(ctx, opt.StringValue())

	return respondEphemeral(responder, interaction, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{statusEmbed(result)},
	})
}

func statusEmbed(result application.StatusResult) *discordgo.MessageEmbed {
	color := discord.ColorOrange
	switch result.Status {
	case application.StatusAccepted:
		color = discord.ColorGreen
	case application.StatusRejected, application.StatusNotFound:
		color = discord.ColorRed
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Application %s", result.ApplicationID),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: string(result.Status), Inline: true},
		},
	}
}
