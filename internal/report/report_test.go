package report

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"gosaku/internal/sysinfo"
)

type fakeCollector struct {
	mem     sysinfo.MemoryStats
	memErr  error
	proc    sysinfo.ProcessStats
	procErr error
}

func (f *fakeCollector) Memory() (sysinfo.MemoryStats, error)   { return f.mem, f.memErr }
func (f *fakeCollector) Process() (sysinfo.ProcessStats, error) { return f.proc, f.procErr }

func baseStats() Stats {
	return Stats{
		Version:          "dev",
		LibraryVersion:   "0.28.1",
		GoVersion:        "go1.24",
		Platform:         "linux",
		ModuleLoaded:     time.Now().Add(-time.Hour),
		CogLoaded:        time.Now().Add(-time.Minute),
		GuildCount:       3,
		UserCount:        120,
		MessageCacheSize: 1024,
		PresenceIntent:   true,
		MembersIntent:    false,
		Latency:          52500 * time.Microsecond,
	}
}

func TestBuild_UnshardedSummary(t *testing.T) {
	out := Build(baseStats(), nil)

	for _, want := range []string{
		"This bot is not sharded and can see 3 guild(s) and 120 user(s).",
		"Message cache capped at 1024, presence intent is enabled and members intent is disabled.",
		"Average websocket latency: 52.5ms",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestBuild_ManualShardLine(t *testing.T) {
	st := baseStats()
	st.ShardCount = 4
	st.ShardIDs = []int{2}

	out := Build(st, nil)
	if !strings.Contains(out, "This bot is manually sharded (Shard 2 of 4)") {
		t.Fatalf("missing manual shard line:\n%s", out)
	}
}

func TestBuild_AutoShardedEnumeratesSmallShardSets(t *testing.T) {
	st := baseStats()
	st.AutoSharded = true
	st.ShardCount = 3
	st.ShardIDs = []int{0, 1, 2}

	out := Build(st, nil)
	if !strings.Contains(out, "(Shards 0, 1, 2 of 3)") {
		t.Fatalf("expected enumerated shard ids:\n%s", out)
	}
}

func TestBuild_AutoShardedSummarizesLargeShardSets(t *testing.T) {
	st := baseStats()
	st.AutoSharded = true
	st.ShardCount = 25
	st.ShardIDs = make([]int, 25)
	for i := range st.ShardIDs {
		st.ShardIDs[i] = i
	}

	out := Build(st, nil)
	if !strings.Contains(out, "(25 shards of 25)") {
		t.Fatalf("expected aggregate shard count:\n%s", out)
	}
	if strings.Contains(out, "Shards 0,") {
		t.Fatalf("shard ids must not be enumerated past 20 shards:\n%s", out)
	}
}

func TestBuild_MessageCacheDisabled(t *testing.T) {
	st := baseStats()
	st.MessageCacheSize = 0

	out := Build(st, nil)
	if !strings.Contains(out, "Message cache is disabled,") {
		t.Fatalf("missing disabled-cache line:\n%s", out)
	}
}

func TestBuild_ProcessBlock(t *testing.T) {
	sys := &fakeCollector{
		mem:  sysinfo.MemoryStats{RSS: 50_000_000, VMS: 1_000_000_000, Unique: 30_000_000},
		proc: sysinfo.ProcessStats{Name: "gosaku", PID: 42, Threads: 8},
	}

	out := Build(baseStats(), sys)
	if !strings.Contains(out, "50 MB physical memory") {
		t.Fatalf("missing memory line:\n%s", out)
	}
	if !strings.Contains(out, "30 MB of which unique to this process") {
		t.Fatalf("missing unique memory clause:\n%s", out)
	}
	if !strings.Contains(out, "Running on PID 42 (`gosaku`) with 8 thread(s).") {
		t.Fatalf("missing process line:\n%s", out)
	}
}

func TestBuild_PartialPermissionFailureOmitsOnlyThatPart(t *testing.T) {
	sys := &fakeCollector{
		memErr: os.ErrPermission,
		proc:   sysinfo.ProcessStats{Name: "gosaku", PID: 42, Threads: 8},
	}

	out := Build(baseStats(), sys)
	if strings.Contains(out, "physical memory") {
		t.Fatalf("memory line should be omitted on permission failure:\n%s", out)
	}
	if !strings.Contains(out, "Running on PID 42") {
		t.Fatalf("process line should survive a memory permission failure:\n%s", out)
	}
	if strings.Contains(out, "access rights") {
		t.Fatalf("blanket notice should not appear for a partial failure:\n%s", out)
	}
}

func TestBuild_FullPermissionFailureYieldsSingleNotice(t *testing.T) {
	sys := &fakeCollector{memErr: os.ErrPermission, procErr: os.ErrPermission}

	out := Build(baseStats(), sys)
	if !strings.Contains(out, "does not have high enough access rights") {
		t.Fatalf("missing permission notice:\n%s", out)
	}
}

func TestBuild_NonPermissionFailureOmitsBlockSilently(t *testing.T) {
	sys := &fakeCollector{
		memErr:  errors.New("proc not mounted"),
		procErr: errors.New("proc not mounted"),
	}

	out := Build(baseStats(), sys)
	if strings.Contains(out, "access rights") || strings.Contains(out, "physical memory") {
		t.Fatalf("process block should be fully omitted:\n%s", out)
	}
}
