package vtexture

import "fmt"

// Rect is an axis-aligned integer rectangle in virtual or device pixels.
// The rectangle covers [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.Height }

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// ContainsRect returns true if o lies entirely inside r.
// An empty o is contained in any rectangle.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

// Intersects returns true if the two rectangles share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// String returns a string representation of the rectangle.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// TilePos is the coordinate of a virtual tile.
type TilePos struct {
	X int
	Y int
}

// String returns a string representation of the tile position.
func (p TilePos) String() string {
	return fmt.Sprintf("Tile(%d,%d)", p.X, p.Y)
}

// TileRange is a half-open range of virtual tile coordinates:
// [X, X+Width) x [Y, Y+Height).
type TileRange struct {
	X      int
	Y      int
	Width  int
	Height int
}

// MaxX returns the exclusive right tile column.
func (r TileRange) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive bottom tile row.
func (r TileRange) MaxY() int { return r.Y + r.Height }

// Empty reports whether the range holds no tiles.
func (r TileRange) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Len returns the number of tiles in the range.
func (r TileRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains returns true if the tile t is inside the range.
func (r TileRange) Contains(t TilePos) bool {
	return t.X >= r.X && t.X < r.MaxX() && t.Y >= r.Y && t.Y < r.MaxY()
}

// Intersect returns the overlap of two ranges.
// The result is the zero TileRange when they do not overlap.
func (r TileRange) Intersect(o TileRange) TileRange {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x0 >= x1 || y0 >= y1 {
		return TileRange{}
	}
	return TileRange{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// String returns a string representation of the range.
func (r TileRange) String() string {
	return fmt.Sprintf("TileRange(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// DeviceTilePos is the position of a slot in the physical tile grid.
type DeviceTilePos struct {
	Col int
	Row int
}

// Geometry converts between virtual pixels, virtual tiles and device tiles.
//
// Tiles are square. Each tile is TileSize device pixels wide, of which
// Padding pixels on every side duplicate the neighbouring tiles so that
// filtered sampling near a tile edge never reads unrelated content. The
// remaining interior is the addressable size: adjacent virtual tiles are
// spaced AddressableTileSize apart in virtual space.
type Geometry struct {
	tileSize int
	padding  int

	// Physical grid dimensions in tiles.
	deviceCols int
	deviceRows int
}

// newGeometry assumes the parameters have already been validated.
func newGeometry(tileSize, padding, deviceWidth, deviceHeight int) Geometry {
	return Geometry{
		tileSize:   tileSize,
		padding:    padding,
		deviceCols: max(deviceWidth, 0) / tileSize,
		deviceRows: max(deviceHeight, 0) / tileSize,
	}
}

// AddressableTileSize returns the size of the tile in pixels, minus the
// padding on each side.
func (g Geometry) AddressableTileSize() int {
	return g.tileSize - 2*g.padding
}

// AllocatedTileSize returns the size of the tile in pixels, including the
// padding.
func (g Geometry) AllocatedTileSize() int {
	return g.tileSize
}

// Padding returns the border width of every tile.
func (g Geometry) Padding() int {
	return g.padding
}

// DeviceGridSize returns the number of slot columns and rows.
func (g Geometry) DeviceGridSize() (cols, rows int) {
	return g.deviceCols, g.deviceRows
}

// Capacity returns the number of physical slots.
func (g Geometry) Capacity() int {
	return g.deviceCols * g.deviceRows
}

// VirtualRectForTile returns the padded virtual-pixel rectangle of tile t.
func (g Geometry) VirtualRectForTile(t TilePos) Rect {
	inner := g.AddressableTileSize()
	return Rect{
		X:      t.X*inner - g.padding,
		Y:      t.Y*inner - g.padding,
		Width:  g.tileSize,
		Height: g.tileSize,
	}
}

// TilesContainingRect returns the smallest tile range whose tiles cover r.
//
// The origin is snapped down and the far edge rounded up, so the result
// always contains r entirely. An empty r yields an empty range.
func (g Geometry) TilesContainingRect(r Rect) TileRange {
	if r.Empty() {
		return TileRange{}
	}
	inner := g.AddressableTileSize()
	x0 := floorDiv(r.X, inner)
	y0 := floorDiv(r.Y, inner)
	x1 := ceilDiv(r.MaxX(), inner)
	y1 := ceilDiv(r.MaxY(), inner)
	return TileRange{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// tilesContainingSize returns the virtual grid dimensions needed to cover a
// width x height area starting at the origin. Non-positive sizes give an
// empty grid.
func (g Geometry) tilesContainingSize(width, height int) (cols, rows int) {
	inner := g.AddressableTileSize()
	return max(ceilDiv(width, inner), 0), max(ceilDiv(height, inner), 0)
}

// DeviceTilePosition returns the grid position of slot id.
// Slots are laid out row-major: id = Row*cols + Col. A grid without slots
// reports the origin.
func (g Geometry) DeviceTilePosition(id SlotID) DeviceTilePos {
	if g.deviceCols == 0 {
		return DeviceTilePos{}
	}
	i := int(id)
	return DeviceTilePos{
		Col: i % g.deviceCols,
		Row: i / g.deviceCols,
	}
}

// DeviceRect returns the full TileSize x TileSize device-pixel rectangle of
// slot id, padding included.
func (g Geometry) DeviceRect(id SlotID) Rect {
	pos := g.DeviceTilePosition(id)
	return Rect{
		X:      pos.Col * g.tileSize,
		Y:      pos.Row * g.tileSize,
		Width:  g.tileSize,
		Height: g.tileSize,
	}
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ceilDiv divides rounding toward positive infinity. b must be positive.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
