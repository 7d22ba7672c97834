// Package jishaku implements the debug and diagnostic command group: a status
// summary, help visibility toggles, background-task listing/cancellation, and
// voice playback controls.
package jishaku

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"gosaku/internal/command"
	"gosaku/internal/playback"
	"gosaku/internal/sysinfo"
	"gosaku/internal/tasks"
)

// moduleLoaded is fixed at process start for the status report.
var moduleLoaded = time.Now()

// Cog is the jishaku command group. All subcommands dispatch through Run.
type Cog struct {
	mu     sync.Mutex
	hidden bool
	loaded time.Time

	tasks   *tasks.Registry
	players *playback.Manager
	sys     sysinfo.Collector
}

// New builds the cog. sys may be nil when process introspection is
// unavailable; the status report degrades accordingly.
func New(reg *tasks.Registry, players *playback.Manager, sys sysinfo.Collector, hidden bool) *Cog {
	return &Cog{
		hidden:  hidden,
		loaded:  time.Now(),
		tasks:   reg,
		players: players,
		sys:     sys,
	}
}

func (c *Cog) Name() string        { return "jishaku" }
func (c *Cog) Description() string { return "Debug and diagnostic commands" }
func (c *Cog) Aliases() []string   { return []string{"jsk"} }

// Hidden reports whether the cog is withheld from the help listing.
func (c *Cog) Hidden() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hidden
}

// setHidden flips the visibility flag; returns false when already in the
// requested state.
func (c *Cog) setHidden(hidden bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hidden == hidden {
		return false
	}
	c.hidden = hidden
	return true
}

func (c *Cog) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return c.status(ctx)
	}

	sub, rest := strings.ToLower(ctx.Args[0]), ctx.Args[1:]
	switch sub {
	case "hide":
		if !c.setHidden(true) {
			return ctx.Reply("Jishaku is already hidden.")
		}
		return ctx.Reply("Jishaku is now hidden.")
	case "show":
		if !c.setHidden(false) {
			return ctx.Reply("Jishaku is already visible.")
		}
		return ctx.Reply("Jishaku is now visible.")
	case "tasks":
		return ctx.ReplyPaginated(tasksMessage(c.tasks))
	case "cancel":
		return ctx.Reply(cancelMessage(c.tasks, rest))
	case "voice", "vc":
		return c.voice(ctx, rest)
	default:
		return ctx.Reply(fmt.Sprintf("Unknown subcommand %q.", ctx.Args[0]))
	}
}
