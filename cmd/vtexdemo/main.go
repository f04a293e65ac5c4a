// Command vtexdemo scrolls a viewport over a large virtual texture and
// reports how well the physical tile pool caches it.
//
// Tile content is a procedural pattern uploaded into an in-memory atlas,
// which is saved next to an occupancy map of the slot states.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/vtexture"
	"github.com/gogpu/vtexture/metrics"
)

func main() {
	var (
		virtualW   = flag.Int("virtual-width", 10000, "virtual space width in pixels")
		virtualH   = flag.Int("virtual-height", 1000000, "virtual space height in pixels")
		deviceSize = flag.Int("device", 1024, "physical texture size in pixels (square)")
		tileSize   = flag.Int("tile", 128, "tile size in pixels, padding included")
		padding    = flag.Int("padding", 1, "tile padding in pixels")
		viewW      = flag.Int("view-width", 800, "viewport width in pixels")
		viewH      = flag.Int("view-height", 600, "viewport height in pixels")
		frames     = flag.Int("frames", 300, "number of frames to simulate")
		scroll     = flag.Int("scroll", 23, "vertical scroll per frame in pixels")
		output     = flag.String("output", "occupancy.png", "occupancy image output file")
		atlasOut   = flag.String("atlas", "atlas.png", "physical texture output file, empty to skip uploads")
		scale      = flag.Int("scale", 24, "occupancy image pixels per slot")
		showMetric = flag.Bool("metrics", false, "print Prometheus metrics after the run")
		verbose    = flag.Bool("v", false, "log allocator activity to stderr")
	)
	flag.Parse()

	if *verbose {
		vtexture.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	vt, err := vtexture.New(vtexture.Config{
		VirtualWidth:  *virtualW,
		VirtualHeight: *virtualH,
		DeviceWidth:   *deviceSize,
		DeviceHeight:  *deviceSize,
		TileSize:      *tileSize,
		Padding:       *padding,
	}, vtexture.WithLabel("vtexdemo"))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sim := simulation{
		viewport: vtexture.Rect{Width: *viewW, Height: *viewH},
		frames:   *frames,
		scroll:   *scroll,
		limit:    *virtualH,
	}
	var atlas *atlasTexture
	if *atlasOut != "" {
		atlas = newAtlasTexture(vt)
		sim.uploader, err = vtexture.NewUploader(vt, atlas)
		if err != nil {
			log.Fatalf("Failed to create uploader: %v", err)
		}
	}

	res, err := simulate(vt, sim)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("frames:       %d (%d failed)\n", res.frames, res.failedFrames)
	p.Printf("tiles:        %d requested, %d rasterized\n", res.tilesRequested, res.tilesRasterized)
	p.Printf("cache:        %v\n", vt.Stats())
	p.Printf("slots:        %d free, %d allocated, %d reclaimable of %d\n",
		vt.FreeCount(), vt.AllocatedCount(), vt.ReclaimableCount(), vt.Capacity())
	p.Printf("saved work:   %d pixels not re-rasterized\n", res.pixelsSaved)

	if *showMetric {
		if err := printMetrics(vt); err != nil {
			log.Fatalf("Failed to gather metrics: %v", err)
		}
	}

	if err := writeOccupancy(*output, vt, *scale); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Occupancy saved to %s\n", *output)

	if atlas != nil {
		if err := savePNG(*atlasOut, atlas.img); err != nil {
			log.Fatalf("Failed to save: %v", err)
		}
		log.Printf("Atlas saved to %s\n", *atlasOut)
	}
}

// printMetrics writes the texture's metrics to stdout in the text exposition
// format.
func printMetrics(vt *vtexture.VirtualTexture) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(metrics.NewCollector(vt, prometheus.Labels{"texture": "vtexdemo"})); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
