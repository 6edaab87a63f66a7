package extension

import "log/slog"

// Bus is a registry of hook callbacks keyed by HookName, generalizing the
// teacher's functional-options registration
// (analyzer/option.go: WithPlugin/WithAnnotationHook append to a slice on
// the Analyzer) into a typed multi-hook registry: `Bus.On(name, fn)` is the
// direct analogue of `WithAnnotationHook(fn)`, just keyed by name instead of
// by a single fixed field.
type Bus struct {
	handlers map[HookName][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: map[HookName][]Handler{}}
}

// On registers fn against name. Multiple handlers for the same hook fire in
// registration order.
func (b *Bus) On(name HookName, fn Handler) {
	if b == nil {
		return
	}
	b.handlers[name] = append(b.handlers[name], fn)
}

// Fire invokes every handler registered for name, in registration order; a
// handler that panics is logged and the remaining handlers still run. It
// fires only name: callers that want both a generic hook and its
// kind-specific variant fire each one themselves. Handlers are expected to execute synchronously on the calling thread (spec §5
// "Scheduling": extensions execute synchronously and must not block
// indefinitely).
func (b *Bus) Fire(name HookName, ev Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers[name] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("extension hook panicked", "hook", name, "recovered", r)
				}
			}()
			h(ev)
		}()
	}
}

// Call is the re-entrant form hooks use to invoke other hooks from within a
// callback (spec §4.8: "hooks may call back into the extension bus").
func (b *Bus) Call(name HookName, ev Event) { b.Fire(name, ev) }
