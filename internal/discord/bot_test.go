package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"gosaku/internal/command"
	"gosaku/internal/config"
)

func TestRegisteredCommandsDropDirectMessages(t *testing.T) {
	cfg := &config.Config{
		DiscordToken:     "token",
		CommandPrefix:    ".",
		MessageCacheSize: 64,
	}
	b, err := NewBot(cfg)
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}

	// A direct-message invocation has no guild id. The guild gate must drop
	// it before the handler touches the session, which is nil here.
	for _, name := range []string{"help", "ping"} {
		cmd, ok := b.reg.Resolve(name)
		if !ok {
			t.Fatalf("command %q not registered", name)
		}
		ctx := &command.Context{
			Message: &discordgo.MessageCreate{Message: &discordgo.Message{
				Author: &discordgo.User{ID: "u1", Username: "tester"},
			}},
		}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("%s from a direct message: %v", name, err)
		}
	}
}
