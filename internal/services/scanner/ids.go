package scanner

import (
	"sync"
	"time"
)

// idGenerator issues scan ids shaped as milliseconds since epoch. Two scans
// landing in the same millisecond would otherwise share a folder, so the
// generator bumps past the last issued id to keep them strictly increasing.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *idGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
