// Package middleware provides command wrappers: access gates, rate limiting,
// and invocation logging.
package middleware

import (
	"log"
	"sync"

	"golang.org/x/time/rate"

	"gosaku/internal/command"
)

// WithOwnerOnly restricts a command to the configured owner; everyone else is
// silently ignored. An empty ownerID leaves the gate open, which is the
// local-development mode.
func WithOwnerOnly(ownerID string) command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context) error {
			if ownerID != "" && ctx.Author().ID != ownerID {
				return nil
			}
			return cmd.Run(ctx)
		})
	}
}

// WithGuildOnly silently drops invocations from outside a guild.
func WithGuildOnly() command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context) error {
			if ctx.GuildID() == "" {
				return nil
			}
			return cmd.Run(ctx)
		})
	}
}

// WithRateLimit drops invocations exceeding a per-user token bucket. One
// middleware value shares its buckets across every command it wraps.
func WithRateLimit(limit rate.Limit, burst int) command.Middleware {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context) error {
			mu.Lock()
			lim, ok := limiters[ctx.Author().ID]
			if !ok {
				lim = rate.NewLimiter(limit, burst)
				limiters[ctx.Author().ID] = lim
			}
			mu.Unlock()

			if !lim.Allow() {
				log.Printf("[WARN] Rate limited %s on command %q", ctx.Author().Username, cmd.Name())
				return nil
			}
			return cmd.Run(ctx)
		})
	}
}

// WithCommandLogger logs every invocation that reaches the command.
func WithCommandLogger() command.Middleware {
	return func(cmd command.Command) command.Command {
		return command.Wrap(cmd, func(ctx *command.Context) error {
			log.Printf("[INFO] %s (%s) invoked %q in guild %s",
				ctx.Author().Username, ctx.Author().ID, cmd.Name(), ctx.GuildID())
			return cmd.Run(ctx)
		})
	}
}
