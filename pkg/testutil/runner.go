package testutil

import (
	"context"
	"sync"
)

// RunCall is one recorded FakeRunner invocation
type RunCall struct {
	Dir  string
	Name string
	Args []string
}

// FakeRunner records invocations instead of starting processes. OnRun, if
// set, is called for each invocation and its error is returned.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []RunCall
	OnRun func(call RunCall) error
}

func (f *FakeRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	call := RunCall{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.Calls = append(f.Calls, call)
	f.mu.Unlock()

	if f.OnRun != nil {
		return f.OnRun(call)
	}
	return nil
}
