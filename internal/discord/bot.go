// Package discord wires the gateway session to the command core: intents,
// prefix dispatch, task registration for in-flight invocations, and shutdown.
package discord

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"gosaku/internal/command"
	"gosaku/internal/command/jishaku"
	"gosaku/internal/config"
	"gosaku/internal/middleware"
	"gosaku/internal/playback"
	"gosaku/internal/sysinfo"
	"gosaku/internal/tasks"
	"gosaku/internal/version"
)

// Bot is the Discord bot.
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	reg     *command.Registry
	tasks   *tasks.Registry
	players *playback.Manager
}

func NewBot(cfg *config.Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{
		dg:      dg,
		cfg:     cfg,
		reg:     command.NewRegistry(),
		tasks:   tasks.New(),
		players: playback.NewManager(dg),
	}

	b.configureIntents()
	dg.State.MaxMessageCount = cfg.MessageCacheSize
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)

	b.registerCommands()
	return b, nil
}

func (b *Bot) configureIntents() {
	intents := discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildVoiceStates |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	if b.cfg.PresenceIntent {
		intents |= discordgo.IntentGuildPresences
	}
	if b.cfg.MembersIntent {
		intents |= discordgo.IntentGuildMembers
	}
	b.dg.Identify.Intents = intents
}

func (b *Bot) registerCommands() {
	sys, err := sysinfo.NewHostCollector()
	if err != nil {
		log.Println("[WARN] Process introspection unavailable:", err)
	}

	limiter := middleware.WithRateLimit(rate.Every(2*time.Second), 3)

	b.reg.Register(command.Apply(
		jishaku.New(b.tasks, b.players, sys, b.cfg.HideDiagnostics),
		middleware.WithOwnerOnly(b.cfg.OwnerID),
		limiter,
		middleware.WithCommandLogger(),
	))
	b.reg.Register(command.Apply(
		&command.HelpCommand{Registry: b.reg},
		middleware.WithGuildOnly(),
		limiter,
		middleware.WithCommandLogger(),
	))
	b.reg.Register(command.Apply(
		&command.PingCommand{},
		middleware.WithGuildOnly(),
		limiter,
		middleware.WithCommandLogger(),
	))
}

// Run opens the session and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Println("[INFO] Shutdown signal received. Cleaning up...")
	if n := b.tasks.CancelAll(); n > 0 {
		log.Printf("[INFO] Cancelled %d in-flight task(s)", n)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("[INFO] ✅ %s is running as %s", version.AppName, r.User.Username)
}

// onMessageCreate parses the prefix, resolves the command, and runs it in its
// own goroutine registered with the task registry so it can be listed and
// cancelled while it runs.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.cfg.CommandPrefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.CommandPrefix))
	if len(fields) == 0 {
		return
	}

	cmd, ok := b.reg.Resolve(fields[0])
	if !ok {
		return
	}
	args := fields[1:]

	runCtx, cancel := context.WithCancel(context.Background())
	invoked := strings.TrimSpace(cmd.Name() + " " + strings.Join(args, " "))
	rec := b.tasks.Add(invoked, m.Author.Username, time.Now(), cancel)

	go func() {
		defer cancel()
		defer b.tasks.Remove(rec)

		ctx := &command.Context{
			Ctx:     runCtx,
			Session: s,
			Message: m,
			Args:    args,
			Prefix:  b.cfg.CommandPrefix,
		}
		if err := cmd.Run(ctx); err != nil {
			log.Printf("[ERR] Error running command %q: %v", cmd.Name(), err)
			_, _ = s.ChannelMessageSend(m.ChannelID, fmt.Sprintf("Error running command: %v", err))
		}
	}()
}
