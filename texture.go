package vtexture

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vtexture/internal/dirty"
)

// ReleaseMode selects what happens to a slot's content on Release.
type ReleaseMode uint8

const (
	// ReleaseReusable keeps the slot's owner and content. The slot becomes
	// Reclaimable and is returned as a cache hit if its tile is requested
	// again before the slot is evicted.
	ReleaseReusable ReleaseMode = iota

	// ReleaseInvalidate discards the content. The slot becomes Free.
	ReleaseInvalidate
)

// String returns the mode name.
func (m ReleaseMode) String() string {
	switch m {
	case ReleaseReusable:
		return "Reusable"
	case ReleaseInvalidate:
		return "Invalidate"
	default:
		return fmt.Sprintf("ReleaseMode(%d)", uint8(m))
	}
}

// Allocation is one tile of a batch request.
type Allocation struct {
	// Slot is the physical slot backing the tile.
	Slot SlotID

	// Tile is the virtual tile coordinate.
	Tile TilePos

	// VirtualRect is the padded virtual-pixel rectangle the slot must hold.
	VirtualRect Rect

	// NeedsContent is true when the slot's pixels have not been produced
	// for this tile yet.
	NeedsContent bool
}

// VirtualTexture maps a large virtual tile space onto a fixed pool of
// physical tile slots.
//
// A slot is Free, Allocated or Reclaimable. Resolving a tile first checks
// the page table and reuses the slot the tile still owns; otherwise it takes
// a Free slot, or evicts a Reclaimable one, or fails when every slot is
// Allocated.
//
// VirtualTexture is NOT safe for concurrent use. Serialize access
// externally, typically holding one lock for a whole frame's resolve pass.
type VirtualTexture struct {
	geom    Geometry
	table   *PageTable
	pool    *slotPool
	pending *dirty.Set

	stats Stats

	logger *slog.Logger
	format gputypes.TextureFormat
	label  string
}

// New creates a virtual texture. All slots start Free.
// It returns a *ConfigError if cfg is invalid.
func New(cfg Config, opts ...Option) (*VirtualTexture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	geom := newGeometry(cfg.TileSize, cfg.Padding, cfg.DeviceWidth, cfg.DeviceHeight)
	cols, rows := geom.tilesContainingSize(cfg.VirtualWidth, cfg.VirtualHeight)
	capacity := geom.Capacity()

	vt := &VirtualTexture{
		geom:    geom,
		table:   NewPageTable(cols, rows),
		pool:    newSlotPool(capacity),
		pending: dirty.New(capacity),
		logger:  o.logger.With("texture", o.label),
		format:  o.format,
		label:   o.label,
	}
	vt.pending.MarkAll()

	vt.logger.Info("vtexture: created",
		"virtualTiles", fmt.Sprintf("%dx%d", cols, rows),
		"slots", capacity,
		"tileSize", cfg.TileSize,
		"padding", cfg.Padding)

	return vt, nil
}

// MustNew is like New but panics if cfg is invalid.
func MustNew(cfg Config, opts ...Option) *VirtualTexture {
	vt, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return vt
}

// Geometry returns the coordinate conversions for this texture.
func (vt *VirtualTexture) Geometry() Geometry {
	return vt.geom
}

// AddressableTileSize returns the tile size minus the padding on each side.
func (vt *VirtualTexture) AddressableTileSize() int {
	return vt.geom.AddressableTileSize()
}

// AllocatedTileSize returns the tile size including the padding.
func (vt *VirtualTexture) AllocatedTileSize() int {
	return vt.geom.AllocatedTileSize()
}

// Capacity returns the number of physical slots.
func (vt *VirtualTexture) Capacity() int {
	return vt.pool.capacity()
}

// GridSize returns the virtual grid dimensions in tiles.
func (vt *VirtualTexture) GridSize() (cols, rows int) {
	return vt.table.Size()
}

// DeviceGridSize returns the physical grid dimensions in tiles.
func (vt *VirtualTexture) DeviceGridSize() (cols, rows int) {
	return vt.geom.DeviceGridSize()
}

// PageTable returns the page table. Entries may be stale; use
// ResolveOrAllocate or VirtualTileState for authoritative answers.
func (vt *VirtualTexture) PageTable() *PageTable {
	return vt.table
}

// TilesContainingRect returns the tile range covering a virtual rectangle.
func (vt *VirtualTexture) TilesContainingRect(r Rect) TileRange {
	return vt.geom.TilesContainingRect(r)
}

// VirtualRectForTile returns the padded virtual rectangle of tile t.
func (vt *VirtualTexture) VirtualRectForTile(t TilePos) Rect {
	return vt.geom.VirtualRectForTile(t)
}

// DeviceRect returns the device-pixel rectangle of slot id.
func (vt *VirtualTexture) DeviceRect(id SlotID) Rect {
	return vt.geom.DeviceRect(id)
}

// DeviceTilePosition returns the grid position of slot id.
func (vt *VirtualTexture) DeviceTilePosition(id SlotID) DeviceTilePos {
	return vt.geom.DeviceTilePosition(id)
}

// Owner returns the virtual tile that owns slot id, if any.
// Reclaimable slots keep their owner.
func (vt *VirtualTexture) Owner(id SlotID) (TilePos, bool) {
	return vt.pool.owner(id)
}

// VirtualRect returns the padded virtual rectangle held by slot id.
func (vt *VirtualTexture) VirtualRect(id SlotID) (Rect, bool) {
	t, ok := vt.pool.owner(id)
	if !ok {
		return Rect{}, false
	}
	return vt.geom.VirtualRectForTile(t), true
}

// lookup returns the slot owned by t, ignoring stale page table entries.
func (vt *VirtualTexture) lookup(t TilePos) (SlotID, bool) {
	id, ok := vt.table.Lookup(t)
	if !ok || !vt.pool.ownedBy(id, t) {
		return NoSlot, false
	}
	return id, true
}

// VirtualToDevicePosition returns the grid position of the slot owned by t.
func (vt *VirtualTexture) VirtualToDevicePosition(t TilePos) (DeviceTilePos, bool) {
	id, ok := vt.lookup(t)
	if !ok {
		return DeviceTilePos{}, false
	}
	return vt.geom.DeviceTilePosition(id), true
}

// DeviceRectForVirtualTile returns the device rectangle of the slot owned by t.
func (vt *VirtualTexture) DeviceRectForVirtualTile(t TilePos) (Rect, bool) {
	id, ok := vt.lookup(t)
	if !ok {
		return Rect{}, false
	}
	return vt.geom.DeviceRect(id), true
}

// ResolveOrAllocate returns the slot for virtual tile t, allocating one if
// needed. The slot is Allocated on return.
//
// If t still owns a slot (Allocated or Reclaimable) that slot is returned
// with its content intact. Otherwise a Free slot is taken, or failing that a
// Reclaimable one is evicted from its previous tile. It returns false when
// t lies outside the virtual grid or every slot is Allocated.
func (vt *VirtualTexture) ResolveOrAllocate(t TilePos) (SlotID, bool) {
	if !vt.table.InBounds(t) {
		return NoSlot, false
	}

	if id, ok := vt.lookup(t); ok {
		vt.pool.acquire(id)
		vt.stats.Hits++
		return id, true
	}

	id, evicted, didEvict, ok := vt.pool.take(t)
	if !ok {
		vt.stats.Failures++
		vt.logger.Debug("vtexture: no slot available", "tile", t)
		return NoSlot, false
	}

	if didEvict {
		// evicted's page table entry is now stale; lookup ignores it.
		vt.stats.Evictions++
		vt.logger.Debug("vtexture: evicted tile", "slot", id, "from", evicted, "to", t)
	}

	vt.stats.Misses++
	vt.pending.Mark(int(id))
	vt.table.Bind(t, id)
	return id, true
}

// Release returns an Allocated slot to the pool.
//
// With ReleaseReusable the slot keeps its tile and content and becomes
// Reclaimable. With ReleaseInvalidate the content is discarded and the slot
// becomes Free; the former tile's page table entry goes stale and is
// ignored from then on.
//
// It panics if id is not Allocated.
func (vt *VirtualTexture) Release(id SlotID, mode ReleaseMode) {
	if st := vt.pool.state(id); !vt.pool.valid(id) || st != SlotAllocated {
		panic(fmt.Sprintf("vtexture: release of slot %d in state %v", id, st))
	}

	switch mode {
	case ReleaseReusable:
		vt.pool.releaseReusable(id)
		vt.stats.ReusableReleases++
	case ReleaseInvalidate:
		vt.pool.releaseInvalidate(id)
		vt.pending.Mark(int(id))
		vt.stats.InvalidateReleases++
	default:
		panic(fmt.Sprintf("vtexture: unknown release mode %v", mode))
	}
}

// ReleaseAll releases every allocation in allocs that is still Allocated.
// It undoes a partially failed batch.
func (vt *VirtualTexture) ReleaseAll(allocs []Allocation, mode ReleaseMode) {
	for _, a := range allocs {
		if vt.pool.state(a.Slot) == SlotAllocated {
			vt.Release(a.Slot, mode)
		}
	}
}

// AllocateRange resolves every tile of r, row by row.
//
// A range reaching outside the virtual grid fails without allocating
// anything. Otherwise it returns false on the first tile that cannot be
// allocated; tiles resolved before it stay Allocated and are returned, so
// callers needing all-or-nothing behaviour should ReleaseAll the partial
// result. An empty range succeeds with no allocations.
func (vt *VirtualTexture) AllocateRange(r TileRange) (bool, []Allocation) {
	return vt.AppendRange(nil, r)
}

// AllocateRect allocates enough tiles to cover a virtual rectangle.
// Tiles already owning a slot are reused. Like AllocateRange it fails when
// any covering tile lies outside the virtual grid.
func (vt *VirtualTexture) AllocateRect(r Rect) (bool, []Allocation) {
	return vt.AppendRange(nil, vt.geom.TilesContainingRect(r))
}

// AppendRect is AllocateRect appending to dst.
func (vt *VirtualTexture) AppendRect(dst []Allocation, r Rect) (bool, []Allocation) {
	return vt.AppendRange(dst, vt.geom.TilesContainingRect(r))
}

// AppendRange is AllocateRange appending to dst.
func (vt *VirtualTexture) AppendRange(dst []Allocation, r TileRange) (bool, []Allocation) {
	if r.Empty() {
		return true, dst
	}
	if r.Intersect(vt.table.Bounds()) != r {
		vt.logger.Debug("vtexture: range outside virtual grid", "range", r)
		return false, dst
	}
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			t := TilePos{X: x, Y: y}
			id, ok := vt.ResolveOrAllocate(t)
			if !ok {
				return false, dst
			}
			dst = append(dst, Allocation{
				Slot:         id,
				Tile:         t,
				VirtualRect:  vt.geom.VirtualRectForTile(t),
				NeedsContent: vt.pending.Has(int(id)),
			})
		}
	}
	return true, dst
}

// SlotState returns the state of slot id. Unknown IDs report SlotFree.
func (vt *VirtualTexture) SlotState(id SlotID) SlotState {
	return vt.pool.state(id)
}

// VirtualTileState returns the state of the slot owned by t, or SlotFree if
// t owns none.
func (vt *VirtualTexture) VirtualTileState(t TilePos) SlotState {
	id, ok := vt.lookup(t)
	if !ok {
		return SlotFree
	}
	return vt.pool.state(id)
}

// NeedsContent reports whether slot id still lacks content for its owner.
func (vt *VirtualTexture) NeedsContent(id SlotID) bool {
	return vt.pending.Has(int(id))
}

// MarkContentReady records that the content of slot id has been produced.
// Ignored unless the slot is Allocated.
func (vt *VirtualTexture) MarkContentReady(id SlotID) {
	if vt.pool.state(id) != SlotAllocated {
		return
	}
	vt.pending.Clear(int(id))
}

// PendingContent returns the Allocated slots still needing content, in
// ascending order.
func (vt *VirtualTexture) PendingContent() []SlotID {
	var ids []SlotID
	vt.pending.ForEach(func(i int) {
		id := SlotID(i)
		if vt.pool.state(id) == SlotAllocated {
			ids = append(ids, id)
		}
	})
	return ids
}

// FreeCount returns the number of Free slots.
func (vt *VirtualTexture) FreeCount() int {
	free, _, _ := vt.pool.counts()
	return free
}

// AllocatedCount returns the number of Allocated slots.
func (vt *VirtualTexture) AllocatedCount() int {
	_, allocated, _ := vt.pool.counts()
	return allocated
}

// ReclaimableCount returns the number of Reclaimable slots.
func (vt *VirtualTexture) ReclaimableCount() int {
	_, _, reclaimable := vt.pool.counts()
	return reclaimable
}

// Stats returns the activity counters.
func (vt *VirtualTexture) Stats() Stats {
	return vt.stats
}

// ResetStats zeroes the activity counters.
func (vt *VirtualTexture) ResetStats() {
	vt.stats = Stats{}
}
