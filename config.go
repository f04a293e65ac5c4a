package vtexture

// Config describes the virtual space and the physical tile pool.
type Config struct {
	// VirtualWidth and VirtualHeight size the virtual pixel space. The page
	// table covers it with ceil(size / AddressableTileSize) tiles per axis.
	// A size of zero or less gives an empty grid where every request fails.
	VirtualWidth  int
	VirtualHeight int

	// DeviceWidth and DeviceHeight size the physical texture in pixels.
	// Partial tiles at the right and bottom edges are not used. A device
	// smaller than one tile has no slots and every allocation fails.
	DeviceWidth  int
	DeviceHeight int

	// TileSize is the side of a tile in pixels, padding included.
	// Default: 256
	TileSize int

	// Padding is the border on each side of a tile.
	// Default: 1
	Padding int
}

// DefaultConfig returns a configuration for a 2048x2048 physical texture
// of 256-pixel tiles over a 32768x32768 virtual space.
func DefaultConfig() Config {
	return Config{
		VirtualWidth:  32768,
		VirtualHeight: 32768,
		DeviceWidth:   2048,
		DeviceHeight:  2048,
		TileSize:      256,
		Padding:       1,
	}
}

// Validate checks if the configuration is valid: a non-negative padding, a
// positive tile size, and a positive addressable size. The slot count must
// also fit in a SlotID.
func (c *Config) Validate() error {
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.TileSize <= 0 {
		return &ConfigError{Field: "TileSize", Reason: "must be positive"}
	}
	if c.AddressableTileSize() <= 0 {
		return &ConfigError{Field: "Padding", Reason: "must be less than half TileSize"}
	}
	if int64(max(c.DeviceWidth, 0)/c.TileSize)*int64(max(c.DeviceHeight, 0)/c.TileSize) >= int64(NoSlot) {
		return &ConfigError{Field: "DeviceWidth", Reason: "too many tiles for SlotID"}
	}
	return nil
}

// AddressableTileSize returns TileSize minus the padding on both sides.
func (c *Config) AddressableTileSize() int {
	return c.TileSize - 2*c.Padding
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "vtexture: invalid config." + e.Field + ": " + e.Reason
}
