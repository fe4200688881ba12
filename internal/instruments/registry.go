package instruments

import (
	"fmt"
	"sort"
	"sync"
)

// Built-in instruments, keyed by definition id. Sub-packages call Register
// from init(); the catalogue is read-only once main starts.
var registry = struct {
	sync.RWMutex
	m map[string]Instrument
}{m: map[string]Instrument{}}

// Register adds an instrument. It panics on an invalid or duplicate
// definition, since both are programming errors in a sub-package.
func Register(inst Instrument) {
	if err := Validate(inst.Definition); err != nil {
		panic(fmt.Sprintf("instruments: %v", err))
	}
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.m[inst.ID()]; dup {
		panic("instruments: duplicate registration of " + inst.ID())
	}
	registry.m[inst.ID()] = inst
}

// Lookup returns a registered instrument. The returned definition shares its
// maps with the catalogue and must be treated as read-only.
func Lookup(id string) (Instrument, bool) {
	registry.RLock()
	defer registry.RUnlock()
	i, ok := registry.m[id]
	return i, ok
}

// List returns summaries ordered by id.
func List() []Summary {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Summary, 0, len(registry.m))
	for _, i := range registry.m {
		out = append(out, i.Summary())
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out
}
