package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/tilecache"
	"github.com/labsyspharm/minervarender/internal/workitem"
)

func writeRawTile(t *testing.T, dir string, gy, gx int64, samples []uint8) {
	t.Helper()
	name := filepath.Join(dir, fmt.Sprintf("%d_%d.raw", gy, gx))
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := binary.Write(f, binary.BigEndian, samples); err != nil {
		t.Fatalf("binary.Write: %v", err)
	}
}

func TestFetchTilesRaw(t *testing.T) {
	dir := t.TempDir()
	writeRawTile(t, dir, 0, 0, []uint8{1, 2, 3, 4})

	items := []workitem.Item{
		{ChannelIndex: 0, Grid: geometry.Grid{GY: 0, GX: 0}},
	}
	channels := []channelDescriptor{
		{Dir: dir, Bits: 8, Format: "raw"},
	}

	stream, err := fetchTiles(items, channels, 0, geometry.Shape{H: 2, W: 2}, tilecache.New(4), 2, false)
	if err != nil {
		t.Fatalf("fetchTiles() error: %v", err)
	}

	item, ok, err := stream.Next()
	if err != nil || !ok {
		t.Fatalf("stream.Next() = (%v, %v, %v)", item, ok, err)
	}
	if len(item.Tile.U8) != 4 || item.Tile.U8[0] != 1 {
		t.Errorf("decoded tile = %v, want [1 2 3 4]", item.Tile.U8)
	}
}

func TestFetchTilesMissingFile(t *testing.T) {
	dir := t.TempDir()

	items := []workitem.Item{
		{ChannelIndex: 0, Grid: geometry.Grid{GY: 0, GX: 0}},
	}
	channels := []channelDescriptor{
		{Dir: dir, Bits: 8, Format: "raw"},
	}

	if _, err := fetchTiles(items, channels, 0, geometry.Shape{H: 2, W: 2}, tilecache.New(4), 2, false); err == nil {
		t.Error("expected error for missing tile file, got nil")
	}
}
