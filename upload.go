package vtexture

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// bytesPerPixel is the RGBA8 stride expected by TextureRegionUpdater.
const bytesPerPixel = 4

// Uploader writes tile pixels into the slots of a VirtualTexture's backing
// texture and marks the uploaded slots as holding content.
//
// Uploader shares the VirtualTexture's concurrency rules: do not call Upload
// while another goroutine allocates or releases slots.
type Uploader struct {
	vt  *VirtualTexture
	dst gpucontext.TextureRegionUpdater
}

// NewUploader creates an uploader writing into dst.
// If dst also implements gpucontext.Texture its size is checked against the
// physical tile grid.
func NewUploader(vt *VirtualTexture, dst gpucontext.TextureRegionUpdater) (*Uploader, error) {
	if dst == nil {
		return nil, ErrNilTexture
	}
	if tex, ok := dst.(gpucontext.Texture); ok {
		ext := vt.DeviceExtent()
		if tex.Width() < int(ext.Width) || tex.Height() < int(ext.Height) {
			return nil, fmt.Errorf("%w: texture is %dx%d, grid needs %dx%d",
				ErrTextureTooSmall, tex.Width(), tex.Height(), ext.Width, ext.Height)
		}
	}
	return &Uploader{vt: vt, dst: dst}, nil
}

// TileBytes returns the number of bytes Upload expects per tile.
func (u *Uploader) TileBytes() int {
	ts := u.vt.AllocatedTileSize()
	return ts * ts * bytesPerPixel
}

// Upload copies one tile of densely packed RGBA pixels, padding included,
// into slot id. The slot must be Allocated.
func (u *Uploader) Upload(id SlotID, pixels []byte) error {
	if u.vt.SlotState(id) != SlotAllocated {
		return fmt.Errorf("%w: slot %d", ErrSlotNotAllocated, id)
	}
	if len(pixels) != u.TileBytes() {
		return fmt.Errorf("%w: got %d bytes, want %d",
			ErrPixelSizeMismatch, len(pixels), u.TileBytes())
	}

	r := u.vt.DeviceRect(id)
	if err := u.dst.UpdateRegion(r.X, r.Y, r.Width, r.Height, pixels); err != nil {
		u.vt.logger.Warn("vtexture: tile upload failed", "slot", id, "rect", r, "err", err)
		return fmt.Errorf("failed to upload slot %d: %w", id, err)
	}

	u.vt.MarkContentReady(id)
	return nil
}

// UploadAll uploads the allocations that still need content, producing each
// tile's pixels with render. It stops at the first error.
func (u *Uploader) UploadAll(allocs []Allocation, render func(Allocation, []byte) error) error {
	buf := make([]byte, u.TileBytes())
	for _, a := range allocs {
		if !u.vt.NeedsContent(a.Slot) {
			continue
		}
		clear(buf)
		if err := render(a, buf); err != nil {
			return fmt.Errorf("failed to render %v: %w", a.Tile, err)
		}
		if err := u.Upload(a.Slot, buf); err != nil {
			return err
		}
	}
	return nil
}
