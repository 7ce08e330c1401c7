package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder is anything that can verify its dependencies, like *store.Store
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard runs g.Guard with a 5s budget when ctx has no deadline and
// panics on failure. Binaries call it once at boot
func MustGuard(ctx context.Context, g Guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
