package repokit

import (
	"context"
	"fmt"
	"time"
)

// Guarder verifies its backends at boot; *store.Store in practice
type Guarder interface {
	Guard(context.Context) error
}

// GuardTimeout bounds Guard when ctx carries no deadline
const GuardTimeout = 10 * time.Second

// Guard runs g.Guard, adding GuardTimeout when the caller set no deadline
func Guard(ctx context.Context, g Guarder) error {
	if g == nil {
		return fmt.Errorf("repokit: nothing to guard")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, GuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		return fmt.Errorf("repokit: dependency guard: %w", err)
	}
	return nil
}

// MustGuard panics when Guard fails; main calls it once right after store.Open
func MustGuard(ctx context.Context, g Guarder) {
	if err := Guard(ctx, g); err != nil {
		panic(err)
	}
}
