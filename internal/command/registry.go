package command

import (
	"sort"
	"strings"
	"sync"
)

// Registry stores commands and resolves invocation names against names and
// aliases. It does not dispatch; the bot looks commands up and runs them with
// its own context.
type Registry struct {
	mu       sync.RWMutex
	commands []Command
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a command. Called during bot setup.
func (r *Registry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
}

// Resolve returns the command matching name or one of its aliases,
// case-insensitively.
func (r *Registry) Resolve(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.commands {
		if strings.EqualFold(c.Name(), name) {
			return c, true
		}
		for _, alias := range c.Aliases() {
			if strings.EqualFold(alias, name) {
				return c, true
			}
		}
	}
	return nil, false
}

// All returns every registered command, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Command, len(r.commands))
	copy(list, r.commands)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
