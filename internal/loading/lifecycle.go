package loading

import "sync"

// Guard tracks whether the consumer owning a coordinator is still
// alive. Timer callbacks check the guard before touching state, so a
// torn-down consumer can never be written to by a stale timer.
//
// A guard may be shared between a coordinator and its rendering layer:
// the layer disposes the guard on teardown and the coordinator's
// outstanding callbacks become no-ops.
type Guard struct {
	mu       sync.Mutex
	disposed bool
}

// NewGuard creates an active lifecycle guard.
func NewGuard() *Guard {
	return &Guard{}
}

// Active reports whether the owner is still alive.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.disposed
}

// Dispose marks the owner as torn down. It reports whether this call
// performed the disposal, so cleanup tied to it runs exactly once.
func (g *Guard) Dispose() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return false
	}
	g.disposed = true
	return true
}
