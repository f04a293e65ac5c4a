package vtexture

import (
	"fmt"
	"math"
)

// SlotID identifies a physical tile slot. Valid IDs are dense in
// [0, Capacity) and stay valid for the lifetime of the VirtualTexture.
type SlotID uint32

// NoSlot marks the absence of a slot.
const NoSlot = SlotID(math.MaxUint32)

// PageTable maps virtual tile coordinates to physical slots.
//
// The table is a flat slice sized cols x rows, indexed row-major
// (x + cols*y). Its dimensions never change after creation.
//
// An entry is only a hint: it stays behind when the slot it names is handed
// to another tile, so callers must confirm the slot's owner before trusting
// it.
type PageTable struct {
	entries []SlotID
	cols    int
	rows    int
}

// NewPageTable creates a page table for a cols x rows virtual grid with
// every entry unbound.
func NewPageTable(cols, rows int) *PageTable {
	if cols < 0 || rows < 0 {
		panic(fmt.Sprintf("vtexture: invalid page table size %dx%d", cols, rows))
	}
	entries := make([]SlotID, cols*rows)
	for i := range entries {
		entries[i] = NoSlot
	}
	return &PageTable{
		entries: entries,
		cols:    cols,
		rows:    rows,
	}
}

// Size returns the grid dimensions in tiles.
func (pt *PageTable) Size() (cols, rows int) {
	return pt.cols, pt.rows
}

// Bounds returns the whole grid as a tile range.
func (pt *PageTable) Bounds() TileRange {
	return TileRange{Width: pt.cols, Height: pt.rows}
}

// InBounds reports whether t lies inside the grid.
func (pt *PageTable) InBounds(t TilePos) bool {
	return t.X >= 0 && t.Y >= 0 && t.X < pt.cols && t.Y < pt.rows
}

// Lookup returns the slot bound to t.
// Coordinates outside the grid are simply unbound.
func (pt *PageTable) Lookup(t TilePos) (SlotID, bool) {
	if !pt.InBounds(t) {
		return NoSlot, false
	}
	id := pt.entries[pt.offset(t)]
	return id, id != NoSlot
}

// Bind records id as the slot for t. Passing NoSlot unbinds the entry.
// It panics if t is outside the grid.
func (pt *PageTable) Bind(t TilePos, id SlotID) {
	if !pt.InBounds(t) {
		panic(fmt.Sprintf("vtexture: page table bind out of bounds: %v not in %dx%d", t, pt.cols, pt.rows))
	}
	pt.entries[pt.offset(t)] = id
}

// Unbind clears the entry for t. It panics if t is outside the grid.
func (pt *PageTable) Unbind(t TilePos) {
	pt.Bind(t, NoSlot)
}

// Bound returns the number of bound entries, stale ones included.
// It scans the whole table.
func (pt *PageTable) Bound() int {
	n := 0
	for _, id := range pt.entries {
		if id != NoSlot {
			n++
		}
	}
	return n
}

func (pt *PageTable) offset(t TilePos) int {
	return t.X + pt.cols*t.Y
}
