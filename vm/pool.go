// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"strings"
	"sync"

	"github.com/SnellerInc/flatql/schema"
)

// DefaultPoolCapacity bounds how many idle batches of a given shape a
// Pool will retain before it starts letting the garbage collector
// reclaim the rest.
const DefaultPoolCapacity = 100

// Pool reuses Batches across pipeline iterations, keyed by column
// shape. It is per-executor, not process-wide: two concurrent queries
// never share a Pool.
type Pool struct {
	mu       sync.Mutex
	capacity int
	byShape  map[string][]*Batch
}

// NewPool returns an empty Pool with the default capacity.
func NewPool() *Pool {
	return &Pool{capacity: DefaultPoolCapacity, byShape: make(map[string][]*Batch)}
}

func shapeKey(types []schema.ColumnType) string {
	var sb strings.Builder
	for _, t := range types {
		sb.WriteByte(byte('0' + t))
		sb.WriteByte(',')
	}
	return sb.String()
}

// Get returns a Batch matching types, either reused from the pool or
// freshly allocated with the given row capacity.
func (p *Pool) Get(types []schema.ColumnType, capacity int) *Batch {
	key := shapeKey(types)
	p.mu.Lock()
	bucket := p.byShape[key]
	var b *Batch
	if n := len(bucket); n > 0 {
		b = bucket[n-1]
		p.byShape[key] = bucket[:n-1]
	}
	p.mu.Unlock()
	if b != nil {
		b.Reset()
		return b
	}
	return NewBatch(types, capacity)
}

// Put returns b to the pool for reuse, provided the pool isn't
// already holding its capacity of batches with b's shape.
func (p *Pool) Put(b *Batch) {
	key := shapeKey(b.Types())
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.byShape[key]) >= p.capacity {
		return
	}
	p.byShape[key] = append(p.byShape[key], b)
}
