// Command minervarender renders a region of a multi-channel tiled image
// pyramid into a single RGB image file, given a small JSON descriptor of
// the channels, region, and pyramid parameters.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/labsyspharm/minervarender/internal/encode"
	"github.com/labsyspharm/minervarender/internal/renderer"
	"github.com/labsyspharm/minervarender/internal/scale"
	"github.com/labsyspharm/minervarender/internal/sysmem"
	"github.com/labsyspharm/minervarender/internal/tilecache"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	var (
		descriptorPath  string
		outputPath      string
		format          string
		quality         int
		gamma           float64
		targetLongSide  int64
		preferHigherRes bool
		cacheSize       int
		concurrency     int
		verbose         bool
		showVersion     bool
		cpuProfile      string
		memProfile      string
	)

	flag.StringVar(&descriptorPath, "descriptor", "", "Path to the render descriptor JSON file")
	flag.StringVar(&outputPath, "out", "", "Output image path")
	flag.StringVar(&format, "format", "png", "Output encoding: jpeg, png, webp")
	flag.IntVar(&quality, "quality", 85, "JPEG/WebP quality 1-100")
	flag.Float64Var(&gamma, "gamma", 2.2, "Output gamma (1 = identity)")
	flag.Int64Var(&targetLongSide, "target-size", 1024, "Target longest side in pixels, used to choose a pyramid level")
	flag.BoolVar(&preferHigherRes, "prefer-higher", true, "Choose the higher-resolution of the two pyramid levels bracketing the target size")
	flag.IntVar(&cacheSize, "cache-size", 0, "Maximum number of decoded tiles to keep cached (0 = auto, sized from available RAM)")
	flag.IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Number of parallel tile-fetch workers")
	flag.BoolVar(&verbose, "verbose", false, "Verbose progress output")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	flag.StringVar(&memProfile, "memprofile", "", "Write memory profile to file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: minervarender -descriptor <file.json> -out <output> [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Render a region of a multi-channel tile pyramid to an RGB image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("minervarender %s (commit %s, built %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatalf("Creating CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("Starting CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
		if verbose {
			log.Printf("CPU profiling enabled → %s", cpuProfile)
		}
	}

	if memProfile != "" {
		defer func() {
			f, err := os.Create(memProfile)
			if err != nil {
				log.Fatalf("Creating memory profile: %v", err)
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatalf("Writing memory profile: %v", err)
			}
			if verbose {
				log.Printf("Memory profile written → %s", memProfile)
			}
		}()
	}

	if descriptorPath == "" || outputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()

	desc, err := loadDescriptor(descriptorPath)
	if err != nil {
		log.Fatalf("Loading descriptor: %v", err)
	}

	enc, err := encode.NewEncoder(format, quality)
	if err != nil {
		log.Fatalf("Encoder: %v", err)
	}

	req := renderer.Request{
		FullShape:         desc.fullShape(),
		LevelCount:        desc.LevelCount,
		TargetLongestSide: targetLongSide,
		PreferHigherRes:   preferHigherRes,
		RegionOrigin:      desc.regionOrigin(),
		RegionShape:       desc.regionShape(),
		TileShape:         desc.tileShape(),
		Channels:          desc.channelSettings(),
		OutputGamma:       gamma,
	}

	plan, err := renderer.PlanRequest(req)
	if err != nil {
		log.Fatalf("Planning render: %v", err)
	}
	if verbose {
		log.Printf("Chose pyramid level %d, %d work item(s)", plan.Level, len(plan.Items))
	}

	if cacheSize == 0 {
		bytesPerTile := req.TileShape.H * req.TileShape.W * 4 // worst case: 32-bit samples
		cacheSize = sysmem.AutoCacheEntries(sysmem.DefaultPressureFraction, bytesPerTile, verbose)
	}
	cache := tilecache.New(cacheSize)
	stream, err := fetchTiles(plan.Items, desc.Channels, plan.Level, req.TileShape, cache, concurrency, verbose)
	if err != nil {
		log.Fatalf("Fetching tiles: %v", err)
	}

	img, err := renderer.Render(plan, req.TileShape, req.Channels, stream, gamma)
	if err != nil {
		log.Fatalf("Compositing: %v", err)
	}

	if desc.OutputWidth > 0 && desc.OutputHeight > 0 {
		img, err = scale.Scale(img, scale.Factors{
			FY: float64(desc.OutputHeight) / float64(img.Shape.H),
			FX: float64(desc.OutputWidth) / float64(img.Shape.W),
		})
		if err != nil {
			log.Fatalf("Scaling output: %v", err)
		}
	}

	data, err := enc.Encode(img.ToImage())
	if err != nil {
		log.Fatalf("Encoding output: %v", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatalf("Writing output: %v", err)
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	fmt.Printf("Rendered %dx%d → %s (%v)\n", img.Shape.W, img.Shape.H, outputPath, elapsed)
}
