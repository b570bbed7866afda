// Package bufpool pools the accumulator buffers internal/compositor
// allocates per render, so repeated renders at the same region size don't
// churn the allocator.
package bufpool

import "sync"

// accumPools maps element count -> *sync.Pool of []uint64. In practice a
// process renders a small, fixed set of region sizes, so this map stays
// tiny.
var accumPools sync.Map

// GetAccum returns a zeroed []uint64 of length n from the pool, or
// allocates a new one.
func GetAccum(n int) []uint64 {
	if p, ok := accumPools.Load(n); ok {
		if v := p.(*sync.Pool).Get(); v != nil {
			buf := v.([]uint64)
			clear(buf)
			return buf
		}
	}
	return make([]uint64, n)
}

// PutAccum returns a buffer obtained from GetAccum for reuse. Buffers of
// length 0 are silently ignored.
func PutAccum(buf []uint64) {
	if len(buf) == 0 {
		return
	}
	p, _ := accumPools.LoadOrStore(len(buf), &sync.Pool{})
	p.(*sync.Pool).Put(buf)
}
