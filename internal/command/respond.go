package command

import "strings"

// Discord caps messages at 2000 characters; leave headroom for formatting.
const messageLimit = 1990

// Reply sends a plain text response to the invoking channel.
func (c *Context) Reply(content string) error {
	_, err := c.Session.ChannelMessageSend(c.Message.ChannelID, content)
	return err
}

// ReplyPaginated sends content as a sequence of messages, each within the
// platform length limit.
func (c *Context) ReplyPaginated(content string) error {
	for _, page := range SplitMessage(content, messageLimit) {
		if err := c.Reply(page); err != nil {
			return err
		}
	}
	return nil
}

// SplitMessage breaks s into chunks of at most limit characters, preferring
// line boundaries and hard-splitting lines that exceed the limit on their own.
func SplitMessage(s string, limit int) []string {
	if s == "" {
		return nil
	}

	var pages []string
	var b strings.Builder

	flush := func() {
		if b.Len() > 0 {
			pages = append(pages, b.String())
			b.Reset()
		}
	}

	for _, line := range strings.Split(s, "\n") {
		for len(line) > limit {
			flush()
			pages = append(pages, line[:limit])
			line = line[limit:]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			flush()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	flush()

	return pages
}
