// Package command provides the message-command core: a command is something
// with a name, aliases, and Run(ctx). Dispatch, middleware wrapping, and reply
// helpers live here; the commands themselves are registered by the bot.
package command

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Aliases() []string
	Run(ctx *Context) error
}

// HiddenReporter is implemented by commands that can remove themselves from
// the help listing.
type HiddenReporter interface {
	Hidden() bool
}

// Context carries one invocation: the triggering message, parsed arguments,
// and a cancellation context signalled when the invocation is cancelled
// through the task registry.
type Context struct {
	Ctx     context.Context
	Session *discordgo.Session
	Message *discordgo.MessageCreate
	Args    []string
	Prefix  string
}

func (c *Context) Author() *discordgo.User {
	return c.Message.Author
}

func (c *Context) GuildID() string {
	return c.Message.GuildID
}
