// Package sysmem estimates how many decoded tiles a cache can hold without
// exceeding a fraction of system RAM, for auto-sizing internal/tilecache
// when the CLI isn't given an explicit -cache-size.
package sysmem

import (
	"log"
	"runtime"
)

// DefaultPressureFraction is the fraction of total RAM the cache is allowed
// to target. 0.25 = 25%.
const DefaultPressureFraction = 0.25

// AutoCacheEntries estimates a tile cache capacity: (fraction * total RAM)
// divided by an estimated bytes-per-tile figure, with Go runtime overhead
// subtracted for headroom. Returns a small fixed fallback if RAM detection
// fails.
func AutoCacheEntries(fraction float64, bytesPerTile int64, verbose bool) int {
	const fallback = 256

	if bytesPerTile <= 0 {
		return fallback
	}

	totalRAM, err := totalSystemRAM()
	if err != nil {
		if verbose {
			log.Printf("sysmem: cannot detect system RAM: %v; using default cache size", err)
		}
		return fallback
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	overhead := int64(m.Sys) + 512*1024*1024 // current usage + 512 MB headroom

	budget := int64(float64(totalRAM)*fraction) - overhead
	if budget <= 0 {
		return fallback
	}

	entries := int(budget / bytesPerTile)
	if entries < 1 {
		return fallback
	}
	if verbose {
		log.Printf("sysmem: auto cache size %d tiles (%.1f GB RAM, %.0f%% budget)",
			entries, float64(totalRAM)/(1024*1024*1024), fraction*100)
	}
	return entries
}
