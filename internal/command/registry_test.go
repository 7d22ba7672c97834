package command

import "testing"

type stubCommand struct {
	name    string
	aliases []string
	hidden  bool
	runs    int
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return "stub" }
func (s *stubCommand) Aliases() []string   { return s.aliases }
func (s *stubCommand) Hidden() bool        { return s.hidden }

func (s *stubCommand) Run(ctx *Context) error {
	s.runs++
	return nil
}

func TestRegistry_ResolveByNameAndAlias(t *testing.T) {
	r := NewRegistry()
	jsk := &stubCommand{name: "jishaku", aliases: []string{"jsk"}}
	r.Register(jsk)
	r.Register(&stubCommand{name: "ping"})

	for _, name := range []string{"jishaku", "jsk", "JSK", "Jishaku"} {
		cmd, ok := r.Resolve(name)
		if !ok {
			t.Fatalf("Resolve(%q) not found", name)
		}
		if cmd.Name() != "jishaku" {
			t.Fatalf("Resolve(%q) = %q, want jishaku", name, cmd.Name())
		}
	}

	if _, ok := r.Resolve("nope"); ok {
		t.Fatal("unknown name resolved")
	}
}

func TestRegistry_AllSortedByName(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubCommand{name: "ping"})
	r.Register(&stubCommand{name: "help"})
	r.Register(&stubCommand{name: "jishaku"})

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Name())
	}
	want := []string{"help", "jishaku", "ping"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order %v, want %v", names, want)
		}
	}
}

func TestRootUnwrapsMiddlewareChain(t *testing.T) {
	inner := &stubCommand{name: "jishaku"}

	passthrough := func(c Command) Command {
		return Wrap(c, func(ctx *Context) error { return c.Run(ctx) })
	}
	wrapped := Apply(inner, passthrough, passthrough)

	if Root(wrapped) != Command(inner) {
		t.Fatal("Root did not reach the inner command")
	}

	hr, ok := Root(wrapped).(HiddenReporter)
	if !ok {
		t.Fatal("HiddenReporter lost through wrapping")
	}
	if hr.Hidden() {
		t.Fatal("stub should not be hidden")
	}

	if err := wrapped.Run(&Context{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if inner.runs != 1 {
		t.Fatalf("inner ran %d times, want 1", inner.runs)
	}
}
