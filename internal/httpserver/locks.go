package httpserver

import (
	"hash/fnv"
	"sync"
)

// sessionLocks serializes writers per session id over a fixed set of mutexes.
// Distinct ids may share a stripe; that only costs concurrency.
type sessionLocks struct {
	stripes [64]sync.Mutex
}

// lock acquires id's stripe and returns its release func.
func (l *sessionLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	m := &l.stripes[h.Sum32()%uint32(len(l.stripes))]
	m.Lock()
	return m.Unlock
}
