package command

import (
	"strings"

	embed "github.com/clinet/discordgo-embed"
)

const embedColor = 0x5865F2

// HelpCommand lists registered commands. Commands reporting themselves as
// hidden are skipped.
type HelpCommand struct {
	Registry *Registry
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List available commands" }
func (c *HelpCommand) Aliases() []string   { return nil }

func (c *HelpCommand) Run(ctx *Context) error {
	msg := embed.NewEmbed().
		SetTitle("Commands").
		SetColor(embedColor)

	for _, cmd := range c.Registry.All() {
		if hr, ok := Root(cmd).(HiddenReporter); ok && hr.Hidden() {
			continue
		}

		name := ctx.Prefix + cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		msg = msg.AddField(name, cmd.Description())
	}

	_, err := ctx.Session.ChannelMessageSendEmbed(ctx.Message.ChannelID, msg.MessageEmbed)
	return err
}
