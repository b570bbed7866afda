package tilecache

import (
	"testing"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
)

func tile(v uint8) compositor.Tile {
	return compositor.Tile{Bits: kernel.Bits8, Shape: geometry.Shape{H: 1, W: 1}, U8: []uint8{v}}
}

func TestCacheGetMiss(t *testing.T) {
	c := New(4)
	if _, ok := c.Get(Key{Channel: 0, Level: 0, GY: 0, GX: 0}); ok {
		t.Error("Get on empty cache returned ok=true")
	}
}

func TestCachePutGet(t *testing.T) {
	c := New(4)
	k := Key{Channel: 1, Level: 0, GY: 2, GX: 3}
	c.Put(k, tile(42))

	got, ok := c.Get(k)
	if !ok {
		t.Fatal("Get after Put returned ok=false")
	}
	if got.U8[0] != 42 {
		t.Errorf("got.U8[0] = %d, want 42", got.U8[0])
	}
}

func TestCacheEvictionFIFO(t *testing.T) {
	c := New(2)
	k0 := Key{Channel: 0, Level: 0, GY: 0, GX: 0}
	k1 := Key{Channel: 0, Level: 0, GY: 0, GX: 1}
	k2 := Key{Channel: 0, Level: 0, GY: 0, GX: 2}

	c.Put(k0, tile(1))
	c.Put(k1, tile(2))
	c.Put(k2, tile(3)) // evicts k0

	if _, ok := c.Get(k0); ok {
		t.Error("k0 should have been evicted")
	}
	if _, ok := c.Get(k1); !ok {
		t.Error("k1 should still be cached")
	}
	if _, ok := c.Get(k2); !ok {
		t.Error("k2 should be cached")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCachePutExistingIsNoOp(t *testing.T) {
	c := New(4)
	k := Key{Channel: 0, Level: 0, GY: 0, GX: 0}
	c.Put(k, tile(1))
	c.Put(k, tile(2)) // should not overwrite

	got, _ := c.Get(k)
	if got.U8[0] != 1 {
		t.Errorf("got.U8[0] = %d, want 1 (first write should win)", got.U8[0])
	}
}
