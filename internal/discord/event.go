package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type SlashCommand interface {
	CreateCommand() *discordgo.ApplicationCommand
}

type InteractionApplicationListener interface {
	SlashCommand
	InteractionListener
}

type InteractionListener interface {
	InteractionType() discordgo.InteractionType
	InteractionID() string
	MatchInteractionID(InteractionID string) bool
	Handle(session *discordgo.Session, interaction *discordgo.Interaction) error
}

type InteractionDispatcher struct {
	Listeners []InteractionListener
	Logger    zerolog.Logger
}

// interactionID is the custom ID of a component or modal, or the command name.
func interactionID(interaction *discordgo.InteractionCreate) string {
	switch interaction.Type {
	case discordgo.InteractionMessageComponent:
		return interaction.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return interaction.ModalSubmitData().CustomID
	case discordgo.InteractionApplicationCommand:
		return interaction.ApplicationCommandData().Name
	}
	return ""
}

func (dispatcher *InteractionDispatcher) OnInteractionCreate(session *discordgo.Session, interaction *discordgo.InteractionCreate) {
	for _, listener := range dispatcher.Listeners {
		if listener.InteractionType() != interaction.Type {
			continue
		}

		if want := listener.InteractionID(); want != "" {
			if !listener.MatchInteractionID(interactionID(interaction)) {
				continue
			}
		}

		if err := listener.Handle(session, interaction.Interaction); err != nil {
			dispatcher.Logger.Error().
				Err(err).
				Str("interaction_id", interactionID(interaction)).
				Msg("failed to handle interaction")
		}
	}
}
