package utils

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation made through a FakeRunner.
type Call struct {
	Name  string
	Args  []string
	Async bool
}

// String renders the call as a command line, for assertions.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeResponse is what a FakeRunner returns for a matching Run.
type FakeResponse struct {
	Output Output
	Err    error
}

// FakeRunner is a Runner that records calls and returns canned results.
// Handlers are consulted in order; the first whose Match returns true wins.
// Unmatched runs succeed with empty output.
type FakeRunner struct {
	mu       sync.Mutex
	calls    []Call
	handlers []fakeHandler

	// StartErr is returned by every Start.
	StartErr error
}

type fakeHandler struct {
	match func(Call) bool
	reply func(ctx context.Context, c Call) FakeResponse
}

// On registers a reply for runs of name whose arguments satisfy match
// (nil matches any arguments).
func (f *FakeRunner) On(name string, match func(args []string) bool, resp FakeResponse) *FakeRunner {
	return f.OnFunc(name, match, func(context.Context, Call) FakeResponse { return resp })
}

// OnFunc is On with a computed reply.
func (f *FakeRunner) OnFunc(name string, match func(args []string) bool, reply func(ctx context.Context, c Call) FakeResponse) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, fakeHandler{
		match: func(c Call) bool {
			return c.Name == name && (match == nil || match(c.Args))
		},
		reply: reply,
	})
	return f
}

// Run implements Runner.
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	c := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	f.calls = append(f.calls, c)
	handlers := append([]fakeHandler(nil), f.handlers...)
	f.mu.Unlock()

	for _, h := range handlers {
		if h.match(c) {
			r := h.reply(ctx, c)
			r.Output.Stdout = strings.TrimSpace(r.Output.Stdout)
			return r.Output, r.Err
		}
	}
	return Output{}, nil
}

// Start implements Runner.
func (f *FakeRunner) Start(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...), Async: true})
	return f.StartErr
}

// Calls returns every recorded call in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls of the named program.
func (f *FakeRunner) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Started returns the recorded Start calls.
func (f *FakeRunner) Started() []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Async {
			out = append(out, c)
		}
	}
	return out
}
