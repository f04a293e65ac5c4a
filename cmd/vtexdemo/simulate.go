package main

import "github.com/gogpu/vtexture"

// simulation describes a vertically scrolling viewport.
type simulation struct {
	viewport vtexture.Rect
	frames   int
	scroll   int
	limit    int // viewport wraps to the top past this virtual Y

	// uploader receives the tiles that need content. When nil the tiles
	// are only marked ready.
	uploader *vtexture.Uploader
}

// result summarizes a simulation run.
type result struct {
	frames          int
	failedFrames    int
	tilesRequested  int
	tilesRasterized int
	pixelsSaved     int
}

// simulate runs the frame loop: release the previous frame's tiles as
// reusable, allocate the new viewport, rasterize what is missing.
// Frames that do not fit the pool are rolled back and skipped.
func simulate(vt *vtexture.VirtualTexture, sim simulation) (result, error) {
	var (
		res     result
		current []vtexture.Allocation
		buf     []vtexture.Allocation
	)
	tilePixels := vt.AllocatedTileSize() * vt.AllocatedTileSize()
	view := sim.viewport

	for range sim.frames {
		vt.ReleaseAll(current, vtexture.ReleaseReusable)

		ok, allocs := vt.AppendRect(buf[:0], view)
		buf = allocs
		res.frames++
		if !ok {
			vt.ReleaseAll(allocs, vtexture.ReleaseReusable)
			current = nil
			res.failedFrames++
		} else {
			for _, a := range allocs {
				res.tilesRequested++
				if a.NeedsContent {
					res.tilesRasterized++
				} else {
					res.pixelsSaved += tilePixels
				}
			}
			if err := fill(vt, sim.uploader, allocs); err != nil {
				return res, err
			}
			current = allocs
		}

		view.Y += sim.scroll
		if sim.limit > 0 && view.MaxY() > sim.limit {
			view.Y = 0
		}
	}
	return res, nil
}

func fill(vt *vtexture.VirtualTexture, u *vtexture.Uploader, allocs []vtexture.Allocation) error {
	if u != nil {
		return u.UploadAll(allocs, renderTile)
	}
	for _, a := range allocs {
		if a.NeedsContent {
			vt.MarkContentReady(a.Slot)
		}
	}
	return nil
}
