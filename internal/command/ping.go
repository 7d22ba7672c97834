package command

import "fmt"

// PingCommand reports the gateway heartbeat latency.
type PingCommand struct{}

func (c *PingCommand) Name() string        { return "ping" }
func (c *PingCommand) Description() string { return "Check bot latency" }
func (c *PingCommand) Aliases() []string   { return nil }

func (c *PingCommand) Run(ctx *Context) error {
	latency := ctx.Session.HeartbeatLatency().Milliseconds()
	return ctx.Reply(fmt.Sprintf("🏓 Pong! %dms", latency))
}
