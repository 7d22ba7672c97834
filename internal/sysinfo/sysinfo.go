// Package sysinfo exposes OS process introspection as an injectable
// collaborator. The host collector wraps gopsutil; callers that can live
// without process metrics pass a nil Collector and lose only that part of
// their output.
package sysinfo

import (
	"errors"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"
)

// MemoryStats holds process memory usage in bytes. Unique is 0 when the
// platform cannot report per-process unique (non-shared) memory.
type MemoryStats struct {
	RSS    uint64
	VMS    uint64
	Unique uint64
}

// ProcessStats identifies the running process.
type ProcessStats struct {
	Name    string
	PID     int32
	Threads int32
}

// Collector answers process-introspection queries. Each method may fail
// independently, typically with a permission error.
type Collector interface {
	Memory() (MemoryStats, error)
	Process() (ProcessStats, error)
}

type hostCollector struct {
	proc *process.Process
}

// NewHostCollector returns a Collector for the current process.
func NewHostCollector() (Collector, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &hostCollector{proc: proc}, nil
}

func (c *hostCollector) Memory() (MemoryStats, error) {
	mem, err := c.proc.MemoryInfo()
	if err != nil {
		return MemoryStats{}, err
	}

	stats := MemoryStats{RSS: mem.RSS, VMS: mem.VMS}

	// Unique memory needs the extended stats, which not every platform
	// provides. Its absence is not an error.
	if ex, err := c.proc.MemoryInfoEx(); err == nil && ex.RSS >= ex.Shared {
		stats.Unique = ex.RSS - ex.Shared
	}
	return stats, nil
}

func (c *hostCollector) Process() (ProcessStats, error) {
	name, err := c.proc.Name()
	if err != nil {
		return ProcessStats{}, err
	}
	threads, err := c.proc.NumThreads()
	if err != nil {
		return ProcessStats{}, err
	}
	return ProcessStats{Name: name, PID: c.proc.Pid, Threads: threads}, nil
}

// IsPermission reports whether err is an access-rights failure.
func IsPermission(err error) bool {
	return errors.Is(err, os.ErrPermission) ||
		errors.Is(err, syscall.EACCES) ||
		errors.Is(err, syscall.EPERM)
}
