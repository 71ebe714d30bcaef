package physics

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/caldera3d/caldera/internal/dynamics"
)

// Runtime is the engine context every World hangs off: shared contact
// scratch, solver limits, and the logger. Create one per process (or per
// test), make worlds from it, and Close it when the simulation is done.
type Runtime struct {
	log         *zap.Logger
	pool        *dynamics.ContactPool
	maxContacts int
	closed      atomic.Bool
}

// RuntimeOption configures NewRuntime.
type RuntimeOption func(*Runtime)

// WithLogger routes facade logging through l instead of discarding it.
func WithLogger(l *zap.Logger) RuntimeOption {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

// WithMaxContacts caps contact pairs per step for every world on this
// runtime. n <= 0 keeps the engine default.
func WithMaxContacts(n int) RuntimeOption {
	return func(r *Runtime) { r.maxContacts = n }
}

// NewRuntime initializes the engine context.
func NewRuntime(opts ...RuntimeOption) (*Runtime, error) {
	r := &Runtime{log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.pool = dynamics.NewContactPool(r.maxContacts)
	r.log.Info("physics runtime initialized", zap.Int("max_contacts", effectiveMaxContacts(r.maxContacts)))
	return r, nil
}

// Close releases the runtime. Idempotent. Worlds created from this runtime
// must not be used afterwards.
func (r *Runtime) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	r.pool = nil
	r.log.Info("physics runtime closed")
	return nil
}

func (r *Runtime) isClosed() bool { return r.closed.Load() }

func effectiveMaxContacts(n int) int {
	if n <= 0 {
		return dynamics.DefaultMaxContacts
	}
	return n
}
