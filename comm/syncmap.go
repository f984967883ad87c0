// SPDX-License-Identifier: MIT
// Package comm: tiny typed lazy map used by the in-process fabric.

package comm

import "sync"

// syncMap is a mutex-guarded map with get-or-create semantics. The fabric
// uses it for rendezvous channels and child fabrics; contention is low (one
// lock acquisition per use). The zero value is ready to use.
type syncMap[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]V
}

// getOrCreate returns the value under k, invoking create exactly once per
// key across all ranks to produce it.
func (s *syncMap[K, V]) getOrCreate(k K, create func() V) V {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[K]V)
	}
	v, ok := s.m[k]
	if !ok {
		v = create()
		s.m[k] = v
	}

	return v
}
