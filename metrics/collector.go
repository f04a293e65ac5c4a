// Package metrics exports VirtualTexture occupancy and cache statistics as
// Prometheus metrics.
//
// A VirtualTexture is not safe for concurrent use, and neither is a
// Collector reading it: gather from the goroutine that owns the texture, or
// serialize gathering with the allocator calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/vtexture"
)

const namespace = "vtexture"

// Collector is a prometheus.Collector reading a single VirtualTexture.
type Collector struct {
	vt *vtexture.VirtualTexture

	capacity  *prometheus.Desc
	slots     *prometheus.Desc
	pending   *prometheus.Desc
	hits      *prometheus.Desc
	misses    *prometheus.Desc
	evictions *prometheus.Desc
	failures  *prometheus.Desc
	releases  *prometheus.Desc
}

// NewCollector creates a collector for vt. constLabels are attached to every
// metric; use them to tell several textures apart.
func NewCollector(vt *vtexture.VirtualTexture, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, labels, constLabels)
	}
	return &Collector{
		vt:        vt,
		capacity:  desc("slot_capacity", "Number of physical tile slots."),
		slots:     desc("slots", "Physical tile slots by state.", "state"),
		pending:   desc("pending_content", "Allocated slots whose content has not been provided yet."),
		hits:      desc("resolve_hits_total", "Resolves served by the slot the tile already owned."),
		misses:    desc("resolve_misses_total", "Resolves that assigned a slot to a new tile."),
		evictions: desc("evictions_total", "Misses that discarded another tile's reclaimable content."),
		failures:  desc("resolve_failures_total", "Resolves that found no slot."),
		releases:  desc("releases_total", "Slot releases by mode.", "mode"),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.slots
	ch <- c.pending
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.failures
	ch <- c.releases
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	vt := c.vt
	gauge := func(d *prometheus.Desc, v int, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), labels...)
	}
	counter := func(d *prometheus.Desc, v uint64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), labels...)
	}

	gauge(c.capacity, vt.Capacity())
	gauge(c.slots, vt.FreeCount(), stateLabel(vtexture.SlotFree))
	gauge(c.slots, vt.AllocatedCount(), stateLabel(vtexture.SlotAllocated))
	gauge(c.slots, vt.ReclaimableCount(), stateLabel(vtexture.SlotReclaimable))
	gauge(c.pending, len(vt.PendingContent()))

	s := vt.Stats()
	counter(c.hits, s.Hits)
	counter(c.misses, s.Misses)
	counter(c.evictions, s.Evictions)
	counter(c.failures, s.Failures)
	counter(c.releases, s.ReusableReleases, modeLabel(vtexture.ReleaseReusable))
	counter(c.releases, s.InvalidateReleases, modeLabel(vtexture.ReleaseInvalidate))
}

func stateLabel(s vtexture.SlotState) string {
	switch s {
	case vtexture.SlotAllocated:
		return "allocated"
	case vtexture.SlotReclaimable:
		return "reclaimable"
	default:
		return "free"
	}
}

func modeLabel(m vtexture.ReleaseMode) string {
	if m == vtexture.ReleaseInvalidate {
		return "invalidate"
	}
	return "reusable"
}
