package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gogpu/vtexture"
)

func newTexture(t *testing.T) *vtexture.VirtualTexture {
	t.Helper()
	vt, err := vtexture.New(vtexture.Config{
		VirtualWidth:  300,
		VirtualHeight: 300,
		DeviceWidth:   128,
		DeviceHeight:  64,
		TileSize:      32,
		Padding:       1,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return vt
}

func mustResolve(t *testing.T, vt *vtexture.VirtualTexture, x, y int) vtexture.SlotID {
	t.Helper()
	id, ok := vt.ResolveOrAllocate(vtexture.TilePos{X: x, Y: y})
	if !ok {
		t.Fatalf("ResolveOrAllocate(%d,%d) failed", x, y)
	}
	return id
}

func TestCollector_Describe(t *testing.T) {
	c := NewCollector(newTexture(t), nil)
	if got := testutil.CollectAndCount(c); got != 11 {
		t.Errorf("CollectAndCount() = %d, want 11", got)
	}
}

func TestCollector_Collect(t *testing.T) {
	vt := newTexture(t)
	c := NewCollector(vt, prometheus.Labels{"texture": "test"})

	a := mustResolve(t, vt, 0, 0)
	b := mustResolve(t, vt, 1, 0)
	vt.MarkContentReady(a)
	vt.Release(b, vtexture.ReleaseReusable)
	mustResolve(t, vt, 0, 0) // hit
	mustResolve(t, vt, 2, 0)

	const want = `
# HELP vtexture_slot_capacity Number of physical tile slots.
# TYPE vtexture_slot_capacity gauge
vtexture_slot_capacity{texture="test"} 8
# HELP vtexture_slots Physical tile slots by state.
# TYPE vtexture_slots gauge
vtexture_slots{state="allocated",texture="test"} 2
vtexture_slots{state="free",texture="test"} 5
vtexture_slots{state="reclaimable",texture="test"} 1
# HELP vtexture_pending_content Allocated slots whose content has not been provided yet.
# TYPE vtexture_pending_content gauge
vtexture_pending_content{texture="test"} 1
# HELP vtexture_resolve_hits_total Resolves served by the slot the tile already owned.
# TYPE vtexture_resolve_hits_total counter
vtexture_resolve_hits_total{texture="test"} 1
# HELP vtexture_resolve_misses_total Resolves that assigned a slot to a new tile.
# TYPE vtexture_resolve_misses_total counter
vtexture_resolve_misses_total{texture="test"} 3
# HELP vtexture_releases_total Slot releases by mode.
# TYPE vtexture_releases_total counter
vtexture_releases_total{mode="invalidate",texture="test"} 0
vtexture_releases_total{mode="reusable",texture="test"} 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(want),
		"vtexture_slot_capacity",
		"vtexture_slots",
		"vtexture_pending_content",
		"vtexture_resolve_hits_total",
		"vtexture_resolve_misses_total",
		"vtexture_releases_total",
	)
	if err != nil {
		t.Error(err)
	}
}

func TestCollector_Evictions(t *testing.T) {
	vt := newTexture(t)
	c := NewCollector(vt, nil)

	// Fill every slot, make them all reclaimable, then request new tiles.
	ok, allocs := vt.AllocateRange(vtexture.TileRange{Width: 4, Height: 2})
	if !ok {
		t.Fatal("AllocateRange() failed")
	}
	vt.ReleaseAll(allocs, vtexture.ReleaseReusable)
	if _, ok := vt.AllocateRange(vtexture.TileRange{Y: 5, Width: 3, Height: 1}); !ok {
		t.Fatal("AllocateRange() failed")
	}

	const want = `
# HELP vtexture_evictions_total Misses that discarded another tile's reclaimable content.
# TYPE vtexture_evictions_total counter
vtexture_evictions_total 3
# HELP vtexture_resolve_failures_total Resolves that found no slot.
# TYPE vtexture_resolve_failures_total counter
vtexture_resolve_failures_total 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want),
		"vtexture_evictions_total", "vtexture_resolve_failures_total"); err != nil {
		t.Error(err)
	}
}

func TestCollector_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	vt := newTexture(t)
	if err := reg.Register(NewCollector(vt, prometheus.Labels{"texture": "a"})); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(NewCollector(vt, prometheus.Labels{"texture": "b"})); err != nil {
		t.Fatalf("Register() second texture error = %v", err)
	}
	if _, err := reg.Gather(); err != nil {
		t.Errorf("Gather() error = %v", err)
	}
}
