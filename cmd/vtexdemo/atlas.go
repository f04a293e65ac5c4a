package main

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/vtexture"
)

// cellSize is the edge of the procedural pattern cells in virtual pixels.
const cellSize = 48

// atlasTexture is an in-memory stand-in for the physical GPU texture.
// It implements gpucontext.Texture and gpucontext.TextureRegionUpdater.
type atlasTexture struct {
	img *image.RGBA
}

func newAtlasTexture(vt *vtexture.VirtualTexture) *atlasTexture {
	ext := vt.DeviceExtent()
	return &atlasTexture{img: image.NewRGBA(image.Rect(0, 0, int(ext.Width), int(ext.Height)))}
}

func (a *atlasTexture) Width() int  { return a.img.Bounds().Dx() }
func (a *atlasTexture) Height() int { return a.img.Bounds().Dy() }

// UpdateRegion copies densely packed RGBA rows into the atlas.
func (a *atlasTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	r := image.Rect(x, y, x+w, y+h)
	if !r.In(a.img.Bounds()) {
		return fmt.Errorf("region %v outside atlas %v", r, a.img.Bounds())
	}
	stride := w * 4
	if len(data) != stride*h {
		return fmt.Errorf("region %v needs %d bytes, got %d", r, stride*h, len(data))
	}
	for row := range h {
		off := a.img.PixOffset(x, y+row)
		copy(a.img.Pix[off:off+stride], data[row*stride:(row+1)*stride])
	}
	return nil
}

// cellColor returns a stable pseudo-random colour for a pattern cell.
func cellColor(cx, cy int) color.RGBA {
	var key [16]byte
	binary.LittleEndian.PutUint64(key[0:], uint64(cx)) //nolint:gosec // sign bits are hashed as-is
	binary.LittleEndian.PutUint64(key[8:], uint64(cy)) //nolint:gosec // sign bits are hashed as-is
	h := xxhash.Sum64(key[:])
	return color.RGBA{
		R: 0x40 | uint8(h),
		G: 0x40 | uint8(h>>8),
		B: 0x40 | uint8(h>>16),
		A: 0xff,
	}
}

// renderTile fills a tile with the procedural pattern. Pixels are a function
// of the virtual position only, so the padding of neighbouring tiles matches.
func renderTile(a vtexture.Allocation, buf []byte) error {
	r := a.VirtualRect
	if len(buf) != r.Width*r.Height*4 {
		return fmt.Errorf("tile buffer is %d bytes, want %d", len(buf), r.Width*r.Height*4)
	}
	i := 0
	for y := r.Y; y < r.MaxY(); y++ {
		cy := floorDiv(y, cellSize)
		lastCX := 0
		var c color.RGBA
		for x := r.X; x < r.MaxX(); x++ {
			cx := floorDiv(x, cellSize)
			if x == r.X || cx != lastCX {
				c, lastCX = cellColor(cx, cy), cx
			}
			buf[i+0] = c.R
			buf[i+1] = c.G
			buf[i+2] = c.B
			buf[i+3] = c.A
			i += 4
		}
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
