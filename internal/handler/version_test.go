package handler

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"vtc-portal/internal/buildinfo"
)

func TestVersionSlashCommand_CreateCommand(t *testing.T) {
	cmd := NewVersionSlashCommand()
	command := cmd.CreateCommand()

	if command.Name != versionCommandName {
		t.Errorf("CreateCommand().Name = %v, want %v", command.Name, versionCommandName)
	}

	if command.Description == "" {
		t.Errorf("CreateCommand().Description is empty")
	}
}

func TestVersionSlashCommand_Handle(t *testing.T) {
	responder := &mockResponder{}
	interaction := &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: versionCommandName},
	}

	if err := NewVersionSlashCommand().handle(responder, interaction); err != nil {
		t.Fatalf("handle() error = %v", err)
	}
	if len(responder.responses) != 1 {
		t.Fatalf("responses = %d, want 1", len(responder.responses))
	}
	data := responder.responses[0].Data
	if data.Flags&discordgo.MessageFlagsEphemeral == 0 {
		t.Error("response is not ephemeral")
	}

	info := buildinfo.Current()
	embed := data.Embeds[0]
	if embed.Title != "VTC Portal "+info.Version {
		t.Errorf("title = %q", embed.Title)
	}
	if len(embed.Fields) != 3 || embed.Fields[0].Value != info.Commit {
		t.Errorf("fields = %+v", embed.Fields)
	}
}
