package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/labsyspharm/minervarender/internal/compositor"
	"github.com/labsyspharm/minervarender/internal/geometry"
	"github.com/labsyspharm/minervarender/internal/kernel"
	"github.com/labsyspharm/minervarender/internal/progress"
	"github.com/labsyspharm/minervarender/internal/tilecache"
	"github.com/labsyspharm/minervarender/internal/tilesource"
	"github.com/labsyspharm/minervarender/internal/workitem"
)

// fetchTiles reads every tile named by items from local files, using
// concurrency workers, and returns a ready-to-composite stream. It sits
// outside the rendering core: the core never touches a filesystem.
func fetchTiles(items []workitem.Item, channels []channelDescriptor, level int, tileShape geometry.Shape, cache *tilecache.Cache, concurrency int, showProgress bool) (compositor.TileStream, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var bar *progress.Bar
	if showProgress {
		bar = progress.New("Fetching", int64(len(items)))
	}

	results := make([]compositor.StreamItem, len(items))
	jobs := make(chan int, len(items))
	errCh := make(chan error, 1)
	var wg sync.WaitGroup

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				item := items[idx]
				tile, err := fetchOne(channels[item.ChannelIndex], item, level, tileShape, cache)
				if err != nil {
					select {
					case errCh <- fmt.Errorf("fetching channel %d grid %v: %w", item.ChannelIndex, item.Grid, err):
					default:
					}
					continue
				}
				results[idx] = compositor.StreamItem{
					ChannelIndex: item.ChannelIndex,
					Grid:         item.Grid,
					Tile:         tile,
				}
				if bar != nil {
					bar.Increment()
				}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	return compositor.NewSliceStream(results), nil
}

func fetchOne(ch channelDescriptor, item workitem.Item, level int, tileShape geometry.Shape, cache *tilecache.Cache) (compositor.Tile, error) {
	key := tilecache.Key{Channel: item.ChannelIndex, Level: level, GY: item.Grid.GY, GX: item.Grid.GX}
	if cache != nil {
		if t, ok := cache.Get(key); ok {
			return t, nil
		}
	}

	ext := ch.Format
	path := filepath.Join(ch.Dir, fmt.Sprintf("%d_%d.%s", item.Grid.GY, item.Grid.GX, ext))

	f, err := os.Open(path)
	if err != nil {
		return compositor.Tile{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var tile compositor.Tile
	switch ch.Format {
	case "raw":
		bits, err := kernel.ParseBits(ch.Bits)
		if err != nil {
			return compositor.Tile{}, err
		}
		tile, err = tilesource.DecodeRaw(f, bits, tileShape)
		if err != nil {
			return compositor.Tile{}, err
		}
	case "png":
		tile, err = tilesource.DecodePNG16(f)
		if err != nil {
			return compositor.Tile{}, err
		}
	default:
		return compositor.Tile{}, fmt.Errorf("unsupported tile format %q", ch.Format)
	}

	if cache != nil {
		cache.Put(key, tile)
	}
	return tile, nil
}
