package module

import (
	"slices"
	"sync"
)

// registry of port sets by module name, filled while mounting
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores ports under name, replacing an earlier entry
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// Lookup finds a T in the port set registered under name
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	p, ok := reg[name]
	mu.RUnlock()
	if !ok {
		var zero T
		return zero, false
	}
	return find[T](p)
}

// Names lists the registered module names, sorted
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
