package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/extension"
)

type fakeEntity struct{ path string }

func (f fakeEntity) Name() string          { return f.path }
func (f fakeEntity) CanonicalPath() string { return f.path }

func TestBusFiresHandlersInRegistrationOrder(t *testing.T) {
	bus := extension.NewBus()
	var order []string

	bus.On(extension.HookOnClassInstance, func(ev extension.Event) {
		order = append(order, "first:"+ev.Entity.CanonicalPath())
	})
	bus.On(extension.HookOnClassInstance, func(ev extension.Event) {
		order = append(order, "second:"+ev.Entity.CanonicalPath())
	})

	bus.Fire(extension.HookOnClassInstance, extension.Event{Entity: fakeEntity{path: "pkg.Widget"}})

	assert.Equal(t, []string{"first:pkg.Widget", "second:pkg.Widget"}, order)
}

func TestBusOnlyFiresRegisteredHook(t *testing.T) {
	bus := extension.NewBus()
	fired := false
	bus.On(extension.HookOnClassInstance, func(extension.Event) { fired = true })

	bus.Fire(extension.HookOnFunctionInstance, extension.Event{})

	assert.False(t, fired)
}

func TestBusRecoversFromPanickingHandler(t *testing.T) {
	bus := extension.NewBus()
	ranAfter := false
	bus.On(extension.HookOnNode, func(extension.Event) { panic("boom") })
	bus.On(extension.HookOnNode, func(extension.Event) { ranAfter = true })

	assert.NotPanics(t, func() {
		bus.Fire(extension.HookOnNode, extension.Event{})
	})
	assert.True(t, ranAfter)
}

func TestNilBusFireIsNoop(t *testing.T) {
	var bus *extension.Bus
	assert.NotPanics(t, func() {
		bus.Fire(extension.HookOnNode, extension.Event{})
		bus.On(extension.HookOnNode, func(extension.Event) {})
	})
}
