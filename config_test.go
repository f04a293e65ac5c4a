package vtexture

import (
	"errors"
	"testing"
)

// smallConfig is a 4x2 slot grid of 32-pixel tiles (addressable 30) over a
// 300x300 virtual space (10x10 tiles).
func smallConfig() Config {
	return Config{
		VirtualWidth:  300,
		VirtualHeight: 300,
		DeviceWidth:   128,
		DeviceHeight:  64,
		TileSize:      32,
		Padding:       1,
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if got := cfg.AddressableTileSize(); got != 254 {
		t.Errorf("AddressableTileSize() = %d, want 254", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"negative padding", func(c *Config) { c.Padding = -1 }, "Padding"},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }, "TileSize"},
		{"negative tile size", func(c *Config) { c.TileSize = -32 }, "TileSize"},
		{"padding eats tile", func(c *Config) { c.Padding = 16 }, "Padding"},
		{"padding exceeds tile", func(c *Config) { c.Padding = 20 }, "Padding"},
		{"too many slots", func(c *Config) { c.DeviceWidth, c.DeviceHeight = 1<<21, 1<<21 }, "DeviceWidth"},
		{"valid", func(*Config) {}, ""},
		{"zero virtual width", func(c *Config) { c.VirtualWidth = 0 }, ""},
		{"negative virtual height", func(c *Config) { c.VirtualHeight = -1 }, ""},
		{"device narrower than tile", func(c *Config) { c.DeviceWidth = 31 }, ""},
		{"device without pixels", func(c *Config) { c.DeviceHeight = 0 }, ""},
		{"zero padding", func(c *Config) { c.Padding = 0 }, ""},
		{"largest padding", func(c *Config) { c.Padding = 15 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.modify(&cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.TileSize = 2
	cfg.Padding = 1

	vt, err := New(cfg)
	if err == nil {
		t.Fatal("New() with addressable size 0 should fail")
	}
	if vt != nil {
		t.Error("New() should return nil texture on error")
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustNew() with invalid config did not panic")
		}
		if _, ok := r.(*ConfigError); !ok {
			t.Errorf("MustNew() panicked with %T, want *ConfigError", r)
		}
	}()

	cfg := smallConfig()
	cfg.Padding = -1
	MustNew(cfg)
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Field: "TileSize", Reason: "must be positive"}
	want := "vtexture: invalid config.TileSize: must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

// A device smaller than one tile is valid but has no slots.
func TestNew_DeviceWithoutSlots(t *testing.T) {
	vt, err := New(Config{
		VirtualWidth:  1000,
		VirtualHeight: 1000,
		DeviceWidth:   100,
		DeviceHeight:  100,
		TileSize:      128,
		Padding:       1,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if vt.Capacity() != 0 {
		t.Errorf("Capacity() = %d, want 0", vt.Capacity())
	}
	if id, ok := vt.ResolveOrAllocate(TilePos{0, 0}); ok || id != NoSlot {
		t.Errorf("ResolveOrAllocate() = (%d, %v), want (NoSlot, false)", id, ok)
	}
	if ok, allocs := vt.AllocateRect(Rect{Width: 10, Height: 10}); ok || len(allocs) != 0 {
		t.Errorf("AllocateRect() = (%v, %d), want (false, 0)", ok, len(allocs))
	}
	if got := vt.Stats().Failures; got != 2 {
		t.Errorf("Stats().Failures = %d, want 2", got)
	}
	if ext := vt.DeviceExtent(); ext.Width != 0 || ext.Height != 0 {
		t.Errorf("DeviceExtent() = %v, want 0x0", ext)
	}
}

// An empty virtual space is valid; every tile lies outside it.
func TestNew_EmptyVirtualSpace(t *testing.T) {
	cfg := smallConfig()
	cfg.VirtualWidth = 0
	cfg.VirtualHeight = -50
	vt := MustNew(cfg)

	if cols, rows := vt.GridSize(); cols != 0 || rows != 0 {
		t.Errorf("GridSize() = %dx%d, want 0x0", cols, rows)
	}
	if _, ok := vt.ResolveOrAllocate(TilePos{0, 0}); ok {
		t.Error("ResolveOrAllocate() succeeded in an empty virtual space")
	}
	if vt.FreeCount() != vt.Capacity() {
		t.Errorf("FreeCount() = %d, want %d", vt.FreeCount(), vt.Capacity())
	}
}
