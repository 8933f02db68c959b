package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// idSource mints rect IDs. Restored IDs raise its floor, so a fresh ID
// never repeats one already in the Store.
type idSource struct {
	last atomic.Uint64
}

func (c *idSource) next() ID {
	return ID(c.last.Add(1))
}

func (c *idSource) observe(id ID) {
	for {
		cur := c.last.Load()
		if uint64(id) <= cur || c.last.CompareAndSwap(cur, uint64(id)) {
			return
		}
	}
}

// lamport stamps outgoing ops for one site.
type lamport struct {
	site string
	n    atomic.Uint64
}

func newLamport() *lamport {
	return &lamport{site: uuid.NewString()}
}

func (l *lamport) stamp(op Op) Op {
	op.Lamport = l.n.Add(1)
	op.Site = l.site
	return op
}

func (l *lamport) current() uint64 {
	return l.n.Load()
}
