package jishaku

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gosaku/internal/tasks"
)

const invokedAtLayout = "2006-01-02 15:04:05"

// tasksMessage renders the live task listing for `jishaku tasks`.
func tasksMessage(reg *tasks.Registry) string {
	recs := reg.List()
	if len(recs) == 0 {
		return "No currently running tasks."
	}

	var b strings.Builder
	for i, rec := range recs {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d: `%s`, invoked at %s UTC",
			rec.Index, rec.Command, rec.InvokedAt.UTC().Format(invokedAtLayout))
	}
	return b.String()
}

// cancelMessage resolves `jishaku cancel <index|"~">` to its reply. The "~"
// literal cancels everything and is checked before numeric parsing.
func cancelMessage(reg *tasks.Registry, args []string) string {
	if len(args) == 0 {
		return `A task index (or "~" for all) is required.`
	}
	if reg.Len() == 0 {
		return "No tasks to cancel."
	}

	arg := args[0]
	if arg == "~" {
		return fmt.Sprintf("Cancelled %d tasks.", reg.CancelAll())
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		return `Literal for "index" not recognized.`
	}

	rec, err := reg.CancelIndex(index)
	if err != nil {
		if errors.Is(err, tasks.ErrUnknownTask) {
			return "Unknown task."
		}
		return fmt.Sprintf("Could not cancel task: %v", err)
	}
	return fmt.Sprintf("Cancelled task %d: `%s`, invoked at %s UTC",
		rec.Index, rec.Command, rec.InvokedAt.UTC().Format(invokedAtLayout))
}
