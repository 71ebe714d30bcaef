package dynamics

import "sync"

// ContactPool reuses contact scratch slices across steps and across systems.
// It is safe for concurrent use; the systems sharing it are not.
type ContactPool struct {
	pool sync.Pool
}

// NewContactPool returns a pool whose fresh slices hold capacity contacts
// before growing. capacity <= 0 uses DefaultMaxContacts.
func NewContactPool(capacity int) *ContactPool {
	if capacity <= 0 {
		capacity = DefaultMaxContacts
	}
	return &ContactPool{
		pool: sync.Pool{
			New: func() any {
				return make([]contact, 0, capacity)
			},
		},
	}
}

func (p *ContactPool) get() []contact {
	return p.pool.Get().([]contact)[:0]
}

func (p *ContactPool) put(c []contact) {
	p.pool.Put(c)
}
