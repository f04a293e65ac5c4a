package vtexture

import "github.com/gogpu/gputypes"

// DeviceExtent returns the pixel size of the physical tile grid. It can be
// smaller than the configured device size when that is not a multiple of
// the tile size.
func (vt *VirtualTexture) DeviceExtent() gputypes.Extent3D {
	cols, rows := vt.geom.DeviceGridSize()
	ts := vt.geom.AllocatedTileSize()
	return gputypes.NewExtent2D(uint32(cols*ts), uint32(rows*ts)) //nolint:gosec // validated positive in New
}

// TextureDescriptor describes the physical texture that backs the slots.
// Tile content is written with copies and read by sampling.
func (vt *VirtualTexture) TextureDescriptor() gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label:         vt.label,
		Size:          vt.DeviceExtent(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        vt.format,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
}

// CopyRegion returns the origin and size of slot id in texture copy terms.
func (vt *VirtualTexture) CopyRegion(id SlotID) (gputypes.Origin3D, gputypes.Extent3D) {
	r := vt.geom.DeviceRect(id)
	//nolint:gosec // slot rectangles are non-negative
	return gputypes.Origin3D{X: uint32(r.X), Y: uint32(r.Y)},
		gputypes.NewExtent2D(uint32(r.Width), uint32(r.Height))
}
