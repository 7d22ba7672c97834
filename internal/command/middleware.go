package command

// Middleware wraps a command (logging, permission checks, rate limiting).
// The wrapped value remains a Command.
type Middleware func(Command) Command

// Wrapped wraps a command with a custom Run. The inner command stays
// reachable through Unwrap so callers can inspect provider interfaces.
type Wrapped struct {
	Command
	RunFunc func(ctx *Context) error
}

func (w *Wrapped) Run(ctx *Context) error {
	if w.RunFunc != nil {
		return w.RunFunc(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *Wrapped) Unwrap() Command { return w.Command }

// Unwrappable is implemented by wrapped commands.
type Unwrappable interface {
	Command
	Unwrap() Command
}

// Wrap returns a command that runs run instead of c.Run, delegating identity
// to c.
func Wrap(c Command, run func(ctx *Context) error) Command {
	return &Wrapped{Command: c, RunFunc: run}
}

// Apply applies middlewares in order; the last in the list is the outermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// Root unwraps a command until the underlying command is not Unwrappable.
func Root(c Command) Command {
	for {
		if u, ok := c.(Unwrappable); ok {
			c = u.Unwrap()
		} else {
			return c
		}
	}
}
