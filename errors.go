package vtexture

import "errors"

// Sentinel errors for the vtexture package.
var (
	// ErrSlotNotAllocated is returned when content is pushed to a slot that
	// is not currently allocated.
	ErrSlotNotAllocated = errors.New("vtexture: slot is not allocated")

	// ErrPixelSizeMismatch is returned when tile pixel data does not match
	// the allocated tile size.
	ErrPixelSizeMismatch = errors.New("vtexture: pixel data does not match tile size")

	// ErrTextureTooSmall is returned when the backing texture cannot hold
	// the physical tile grid.
	ErrTextureTooSmall = errors.New("vtexture: backing texture is smaller than the tile grid")

	// ErrNilTexture is returned when an uploader is created without a
	// destination texture.
	ErrNilTexture = errors.New("vtexture: nil destination texture")
)
