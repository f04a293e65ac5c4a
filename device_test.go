package vtexture

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestTextureDescriptor(t *testing.T) {
	cfg := smallConfig()
	cfg.DeviceWidth = 140 // 12 unused pixels
	vt := MustNew(cfg, WithLabel("tiles"), WithTextureFormat(gputypes.TextureFormatBGRA8Unorm))

	desc := vt.TextureDescriptor()
	if desc.Label != "tiles" {
		t.Errorf("Label = %q, want %q", desc.Label, "tiles")
	}
	if want := gputypes.NewExtent2D(128, 64); desc.Size != want {
		t.Errorf("Size = %+v, want %+v", desc.Size, want)
	}
	if desc.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v, want BGRA8Unorm", desc.Format)
	}
	if desc.Dimension != gputypes.TextureDimension2D {
		t.Errorf("Dimension = %v, want 2D", desc.Dimension)
	}
	if !desc.Usage.Contains(gputypes.TextureUsageCopyDst) || !desc.Usage.Contains(gputypes.TextureUsageTextureBinding) {
		t.Errorf("Usage = %v, want CopyDst|TextureBinding", desc.Usage)
	}
	if desc.MipLevelCount != 1 || desc.SampleCount != 1 {
		t.Errorf("MipLevelCount/SampleCount = %d/%d, want 1/1", desc.MipLevelCount, desc.SampleCount)
	}
}

func TestTextureDescriptor_DefaultFormat(t *testing.T) {
	vt := MustNew(smallConfig(), WithTextureFormat(gputypes.TextureFormatUndefined))
	if got := vt.TextureDescriptor().Format; got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", got)
	}
}

func TestCopyRegion(t *testing.T) {
	vt := MustNew(smallConfig()) // 4x2 grid of 32px tiles
	ext := vt.DeviceExtent()

	for i := range vt.Capacity() {
		id := SlotID(i)
		origin, size := vt.CopyRegion(id)
		r := vt.DeviceRect(id)

		if origin.X != uint32(r.X) || origin.Y != uint32(r.Y) || origin.Z != 0 {
			t.Errorf("CopyRegion(%d) origin = %+v, want rect %v", id, origin, r)
		}
		if size != gputypes.NewExtent2D(32, 32) {
			t.Errorf("CopyRegion(%d) size = %+v, want 32x32x1", id, size)
		}
		if origin.X+size.Width > ext.Width || origin.Y+size.Height > ext.Height {
			t.Errorf("CopyRegion(%d) exceeds texture extent %+v", id, ext)
		}
	}
}
