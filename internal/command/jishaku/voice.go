package jishaku

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gosaku/internal/command"
	"gosaku/internal/playback"
)

// voice dispatches the `jishaku voice` subcommands. Without a subcommand it
// relays the current voice state.
func (c *Cog) voice(ctx *command.Context, args []string) error {
	if ctx.GuildID() == "" {
		return ctx.Reply("Voice commands can only be used in a guild.")
	}

	player := c.players.Get(ctx.GuildID())

	if len(args) == 0 {
		return c.voiceStatus(ctx, player)
	}

	sub, rest := strings.ToLower(args[0]), args[1:]
	switch sub {
	case "join", "connect":
		return c.voiceJoin(ctx, player, rest)
	case "disconnect", "dc":
		return c.voiceDisconnect(ctx, player)
	case "stop":
		return c.voiceStop(ctx, player)
	case "pause":
		return c.voicePause(ctx, player)
	case "resume":
		return c.voiceResume(ctx, player)
	case "volume":
		return c.voiceVolume(ctx, player, rest)
	case "play", "play_local":
		return c.voicePlay(ctx, player, rest)
	default:
		return ctx.Reply(fmt.Sprintf("Unknown voice subcommand %q.", args[0]))
	}
}

func (c *Cog) voiceStatus(ctx *command.Context, p *playback.Player) error {
	if msg := playback.CapabilityCheck(); msg != "" {
		return ctx.Reply(msg)
	}

	if !p.Connected() {
		return ctx.Reply("Not connected.")
	}

	state := "idle"
	if p.Paused() {
		state = "paused"
	} else if p.Playing() {
		state = "playing"
	}
	return ctx.Reply(fmt.Sprintf("Connected to %s, %s.", c.channelName(ctx, p.ChannelID()), state))
}

func (c *Cog) voiceJoin(ctx *command.Context, p *playback.Player, args []string) error {
	if msg := playback.CapabilityCheck(); msg != "" {
		return ctx.Reply(msg)
	}

	channelID, unmet := c.resolveDestination(ctx, args)
	if unmet != "" {
		return ctx.Reply(unmet)
	}

	if err := p.Join(channelID); err != nil {
		return err
	}
	return ctx.Reply(fmt.Sprintf("Connected to %s.", c.channelName(ctx, channelID)))
}

// resolveDestination picks the voice channel for join: an explicit channel
// argument, a member argument (their current channel), or the invoking user's
// channel. The second return value is a user-facing message when unmet.
func (c *Cog) resolveDestination(ctx *command.Context, args []string) (string, string) {
	if len(args) > 0 {
		id := strings.Trim(args[0], "<#@!&>")

		if ch, err := ctx.Session.State.Channel(id); err == nil && ch.Type == discordgo.ChannelTypeGuildVoice {
			return ch.ID, ""
		}

		channelID, err := c.players.FindUserVoiceChannel(ctx.GuildID(), id)
		if err != nil {
			return "", "Member has no voice channel."
		}
		return channelID, ""
	}

	channelID, err := c.players.FindUserVoiceChannel(ctx.GuildID(), ctx.Author().ID)
	if err != nil {
		return "", "Member has no voice channel."
	}
	return channelID, ""
}

func (c *Cog) voiceDisconnect(ctx *command.Context, p *playback.Player) error {
	if msg := playback.ConnectedCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	name := c.channelName(ctx, p.ChannelID())
	if err := p.Disconnect(); err != nil && !errors.Is(err, playback.ErrNotConnected) {
		return err
	}
	return ctx.Reply(fmt.Sprintf("Disconnected from %s.", name))
}

func (c *Cog) voiceStop(ctx *command.Context, p *playback.Player) error {
	if msg := playback.PlayingCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	name := c.channelName(ctx, p.ChannelID())
	if err := p.Stop(); err != nil {
		if errors.Is(err, playback.ErrNotPlaying) {
			return ctx.Reply(playback.MsgNotPlaying)
		}
		return err
	}
	return ctx.Reply(fmt.Sprintf("Stopped playing audio in %s.", name))
}

func (c *Cog) voicePause(ctx *command.Context, p *playback.Player) error {
	if msg := playback.PlayingCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	switch err := p.Pause(); {
	case errors.Is(err, playback.ErrAlreadyPaused):
		return ctx.Reply("Audio is already paused.")
	case errors.Is(err, playback.ErrNotPlaying):
		return ctx.Reply(playback.MsgNotPlaying)
	case err != nil:
		return err
	}
	return ctx.Reply(fmt.Sprintf("Paused audio in %s.", c.channelName(ctx, p.ChannelID())))
}

func (c *Cog) voiceResume(ctx *command.Context, p *playback.Player) error {
	if msg := playback.PlayingCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	switch err := p.Resume(); {
	case errors.Is(err, playback.ErrNotPaused):
		return ctx.Reply("Audio is not paused.")
	case errors.Is(err, playback.ErrNotPlaying):
		return ctx.Reply(playback.MsgNotPlaying)
	case err != nil:
		return err
	}
	return ctx.Reply(fmt.Sprintf("Resumed audio in %s.", c.channelName(ctx, p.ChannelID())))
}

func (c *Cog) voiceVolume(ctx *command.Context, p *playback.Player, args []string) error {
	if msg := playback.PlayingCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	if len(args) == 0 {
		return ctx.Reply("A volume percentage is required.")
	}
	pct, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return ctx.Reply(`Literal for "percentage" not recognized.`)
	}

	vol, err := p.SetVolume(pct)
	switch {
	case errors.Is(err, playback.ErrNoVolumeControl):
		return ctx.Reply("This source doesn't support adjusting volume or the interface to do so is not exposed.")
	case errors.Is(err, playback.ErrNotPlaying):
		return ctx.Reply(playback.MsgNotPlaying)
	case err != nil:
		return err
	}
	return ctx.Reply(fmt.Sprintf("Volume set to %.2f%%", vol*100))
}

func (c *Cog) voicePlay(ctx *command.Context, p *playback.Player, args []string) error {
	if msg := playback.ConnectedCheck(p); msg != "" {
		return ctx.Reply(msg)
	}

	if len(args) == 0 {
		return ctx.Reply("A URI to play from is required.")
	}
	uri := strings.Join(args, " ")

	if err := p.Play(uri); err != nil {
		if errors.Is(err, playback.ErrNotConnected) {
			return ctx.Reply(playback.MsgNotConnected)
		}
		return fmt.Errorf("failed to start playback: %w", err)
	}
	return ctx.Reply(fmt.Sprintf("Playing in %s.", c.channelName(ctx, p.ChannelID())))
}

// channelName resolves a channel id to its name for display, falling back to
// the id itself.
func (c *Cog) channelName(ctx *command.Context, channelID string) string {
	if ch, err := ctx.Session.State.Channel(channelID); err == nil {
		return ch.Name
	}
	if ch, err := ctx.Session.Channel(channelID); err == nil {
		return ch.Name
	}
	return channelID
}
