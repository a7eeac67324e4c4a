// Package testsupport holds helpers shared by package tests: an input
// recorder standing in for a host's callbacks and a counting deriver.
package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-formfields/pkg/model"
	"github.com/goliatone/go-formfields/pkg/validation"
)

// Event kinds captured by Recorder.
const (
	EventChange = "change"
	EventBlur   = "blur"
	EventFocus  = "focus"
)

// Call is a recorded callback invocation.
type Call struct {
	Event string
	Value any
}

// Recorder captures input callbacks in invocation order.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// Input returns a model.Input wired to the recorder.
func (r *Recorder) Input(name string, value any) model.Input {
	return model.Input{
		Name:     name,
		Value:    value,
		OnChange: func(v any) { r.record(EventChange, v) },
		OnBlur:   func(v any) { r.record(EventBlur, v) },
		OnFocus:  func() { r.record(EventFocus, nil) },
	}
}

// Calls returns a copy of every recorded call.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Count returns how many times event fired.
func (r *Recorder) Count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, call := range r.calls {
		if call.Event == event {
			n++
		}
	}
	return n
}

// Last returns the most recent call of event.
func (r *Recorder) Last(event string) (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Event == event {
			return r.calls[i], true
		}
	}
	return Call{}, false
}

// Reset clears recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *Recorder) record(event string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Event: event, Value: value})
}

// CountingDeriver wraps a result in a deriver that counts invocations.
type CountingDeriver struct {
	mu     sync.Mutex
	calls  int
	Result validation.Result
}

// Derive implements validation.Deriver.
func (d *CountingDeriver) Derive(model.Meta) validation.Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	return d.Result
}

// Calls returns the invocation count.
func (d *CountingDeriver) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
