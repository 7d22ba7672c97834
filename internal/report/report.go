// Package report composes the human-readable status summary. Build is a pure
// function of the collected counters; gathering OS process metrics is the only
// part that can fail and it degrades to a one-line notice instead of an error.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"gosaku/internal/sysinfo"
)

// Stats carries everything the summary is formatted from. All fields are
// plain values so the formatter can be exercised without a live session.
type Stats struct {
	Version        string
	LibraryVersion string
	GoVersion      string
	Platform       string

	ModuleLoaded time.Time
	CogLoaded    time.Time

	GuildCount int
	UserCount  int

	AutoSharded bool
	ShardIDs    []int
	ShardCount  int

	MessageCacheSize int
	PresenceIntent   bool
	MembersIntent    bool

	Latency time.Duration
}

// Build renders the multi-line status summary. sys may be nil, in which case
// the process block is omitted entirely.
func Build(st Stats, sys sysinfo.Collector) string {
	lines := []string{
		fmt.Sprintf("gosaku v%s, discordgo `%s`, `%s` on `%s`",
			st.Version, st.LibraryVersion, st.GoVersion, st.Platform),
		fmt.Sprintf("Module was loaded %s, cog was loaded %s.",
			humanize.Time(st.ModuleLoaded), humanize.Time(st.CogLoaded)),
		"",
	}

	if sys != nil {
		lines = append(lines, processLines(sys)...)
	}

	cacheSummary := fmt.Sprintf("%d guild(s) and %d user(s)", st.GuildCount, st.UserCount)
	lines = append(lines, shardLine(st, cacheSummary))

	messageCache := "Message cache is disabled"
	if st.MessageCacheSize > 0 {
		messageCache = fmt.Sprintf("Message cache capped at %d", st.MessageCacheSize)
	}
	lines = append(lines, fmt.Sprintf("%s, presence intent is %s and members intent is %s.",
		messageCache, enabled(st.PresenceIntent), enabled(st.MembersIntent)))

	lines = append(lines, fmt.Sprintf("Average websocket latency: %sms", latencyMillis(st.Latency)))

	return strings.Join(lines, "\n")
}

// processLines formats the optional OS metrics block. Each query may fail
// independently; only a blanket permission failure produces a notice.
func processLines(sys sysinfo.Collector) []string {
	var lines []string

	mem, memErr := sys.Memory()
	if memErr == nil {
		line := fmt.Sprintf("Using %s physical memory and %s virtual memory",
			humanize.Bytes(mem.RSS), humanize.Bytes(mem.VMS))
		if mem.Unique > 0 {
			line += fmt.Sprintf(", %s of which unique to this process", humanize.Bytes(mem.Unique))
		}
		lines = append(lines, line+".")
	}

	proc, procErr := sys.Process()
	if procErr == nil {
		lines = append(lines, fmt.Sprintf("Running on PID %d (`%s`) with %d thread(s).",
			proc.PID, proc.Name, proc.Threads))
	}

	if len(lines) == 0 {
		if sysinfo.IsPermission(memErr) || sysinfo.IsPermission(procErr) {
			lines = append(lines,
				"Process introspection is available, but this process does not have high enough access rights to query its own information.")
		} else {
			return nil
		}
	}

	return append(lines, "")
}

func shardLine(st Stats, cacheSummary string) string {
	switch {
	case st.AutoSharded && len(st.ShardIDs) > 20:
		return fmt.Sprintf("This bot is automatically sharded (%d shards of %d) and can see %s.",
			len(st.ShardIDs), st.ShardCount, cacheSummary)
	case st.AutoSharded:
		ids := make([]string, len(st.ShardIDs))
		for i, id := range st.ShardIDs {
			ids[i] = strconv.Itoa(id)
		}
		return fmt.Sprintf("This bot is automatically sharded (Shards %s of %d) and can see %s.",
			strings.Join(ids, ", "), st.ShardCount, cacheSummary)
	case st.ShardCount > 1:
		shardID := 0
		if len(st.ShardIDs) > 0 {
			shardID = st.ShardIDs[0]
		}
		return fmt.Sprintf("This bot is manually sharded (Shard %d of %d) and can see %s.",
			shardID, st.ShardCount, cacheSummary)
	default:
		return fmt.Sprintf("This bot is not sharded and can see %s.", cacheSummary)
	}
}

// latencyMillis renders the latency in milliseconds rounded to two decimals,
// without trailing zeros (52.5, not 52.50).
func latencyMillis(d time.Duration) string {
	ms := math.Round(d.Seconds()*1000*100) / 100
	return strconv.FormatFloat(ms, 'f', -1, 64)
}

func enabled(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
