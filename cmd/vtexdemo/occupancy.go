package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vtexture"
)

// Slot colours by state.
var stateColors = map[vtexture.SlotState]color.RGBA{
	vtexture.SlotFree:        {R: 0x40, G: 0x40, B: 0x40, A: 0xff},
	vtexture.SlotAllocated:   {R: 0x3c, G: 0xb3, B: 0x71, A: 0xff},
	vtexture.SlotReclaimable: {R: 0x46, G: 0x82, B: 0xb4, A: 0xff},
}

// captionHeight is the strip below the grid holding the legend.
const captionHeight = 24

// occupancyMap returns one pixel per slot, laid out like the physical grid.
func occupancyMap(vt *vtexture.VirtualTexture) *image.RGBA {
	cols, rows := vt.DeviceGridSize()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for i := range vt.Capacity() {
		id := vtexture.SlotID(i)
		pos := vt.DeviceTilePosition(id)
		img.SetRGBA(pos.Col, pos.Row, stateColors[vt.SlotState(id)])
	}
	return img
}

// renderOccupancy scales the occupancy map up by scale and adds a caption.
func renderOccupancy(vt *vtexture.VirtualTexture, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = 1
	}
	src := occupancyMap(vt)
	grid := image.Rect(0, 0, src.Bounds().Dx()*scale, src.Bounds().Dy()*scale)
	width := max(grid.Dx(), 320)

	dst := image.NewRGBA(image.Rect(0, 0, width, grid.Dy()+captionHeight))
	xdraw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, xdraw.Src)
	xdraw.NearestNeighbor.Scale(dst, grid, src, src.Bounds(), xdraw.Src, nil)

	face, err := captionFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(4, grid.Dy()+captionHeight-7),
	}
	d.DrawString(fmt.Sprintf("free %d  allocated %d  reclaimable %d",
		vt.FreeCount(), vt.AllocatedCount(), vt.ReclaimableCount()))

	return dst, nil
}

func captionFace() (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse caption font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create caption face: %w", err)
	}
	return face, nil
}

// writeOccupancy renders the occupancy image and saves it as PNG.
func writeOccupancy(path string, vt *vtexture.VirtualTexture, scale int) error {
	img, err := renderOccupancy(vt, scale)
	if err != nil {
		return err
	}
	return savePNG(path, img)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
