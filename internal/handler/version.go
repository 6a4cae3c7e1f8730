package handler

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"vtc-portal/internal/buildinfo"
)

const versionCommandName = "version"

type versionSlashCommand struct {
	baseSlashCommand
}

func NewVersionSlashCommand() *versionSlashCommand {
	return &versionSlashCommand{}
}

func (command *versionSlashCommand) CreateCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        versionCommandName,
		Description: "Show the portal build that is running.",
	}
}

func (command *versionSlashCommand) InteractionType() discordgo.InteractionType {
	return discordgo.InteractionApplicationCommand
}

func (command *versionSlashCommand) InteractionID() string {
	return versionCommandName
}

func (command *versionSlashCommand) MatchInteractionID(interactionID string) bool {
	return command.InteractionID() == interactionID
}

func (command *versionSlashCommand) Handle(session *discordgo.Session, interaction *discordgo.Interaction) error {
	return command.handle(session, interaction)
}

func (command *versionSlashCommand) handle(responder interactionResponder, interaction *discordgo.Interaction) error {
	return respondEphemeral(responder, interaction, &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{versionEmbed(buildinfo.Current())},
	})
}

func versionEmbed(info buildinfo.Info) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("VTC Portal %s", info.Version),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Commit", Value: info.Commit},
			{Name: "Built", Value: info.BuildTime},
			{Name: "Go(build)", Value: info.GoBuild},
		},
	}
}
