package jishaku

import (
	"github.com/bwmarrin/discordgo"

	"gosaku/internal/command"
	"gosaku/internal/report"
	"gosaku/internal/version"
)

// status replies with the multi-line diagnostic summary.
func (c *Cog) status(ctx *command.Context) error {
	s := ctx.Session

	st := report.Stats{
		Version:        version.Version,
		LibraryVersion: discordgo.VERSION,
		GoVersion:      version.GoVersion,
		Platform:       version.Platform,

		ModuleLoaded: moduleLoaded,
		CogLoaded:    c.loaded,

		GuildCount: len(s.State.Guilds),
		UserCount:  userCount(s),

		ShardIDs:   []int{s.ShardID},
		ShardCount: s.ShardCount,

		MessageCacheSize: s.State.MaxMessageCount,
		PresenceIntent:   s.Identify.Intents&discordgo.IntentGuildPresences != 0,
		MembersIntent:    s.Identify.Intents&discordgo.IntentGuildMembers != 0,

		Latency: s.HeartbeatLatency(),
	}

	return ctx.ReplyPaginated(report.Build(st, c.sys))
}

// userCount approximates the visible user population from cached guild
// member counts; discordgo keeps no global user cache.
func userCount(s *discordgo.Session) int {
	total := 0
	for _, g := range s.State.Guilds {
		total += g.MemberCount
	}
	return total
}
