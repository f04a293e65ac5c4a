// Package vtexture manages a virtual texture: a huge, sparsely used 2D tile
// space paged onto a small fixed pool of physical tile slots.
//
// # Overview
//
// A renderer that caches rasterized content on the GPU rarely needs more
// than a screenful of it at once, yet the content it may be asked for spans
// a far larger area. vtexture splits that virtual area into square tiles and
// maps the tiles currently needed onto slots of one physical texture. The
// package only tracks the mapping; producing and uploading pixels stay with
// the caller (see Uploader for a thin bridge to gpucontext textures).
//
// # Quick Start
//
//	vt, err := vtexture.New(vtexture.Config{
//	    VirtualWidth:  10000,
//	    VirtualHeight: 1000000,
//	    DeviceWidth:   1024,
//	    DeviceHeight:  1024,
//	    TileSize:      128,
//	    Padding:       1,
//	})
//	if err != nil {
//	    return err
//	}
//
//	ok, allocs := vt.AllocateRect(vtexture.Rect{X: 15, Y: 153, Width: 800, Height: 600})
//	if !ok {
//	    vt.ReleaseAll(allocs, vtexture.ReleaseReusable)
//	    return errTooManyTiles
//	}
//	for _, a := range allocs {
//	    if a.NeedsContent {
//	        rasterize(a.VirtualRect, vt.DeviceRect(a.Slot))
//	        vt.MarkContentReady(a.Slot)
//	    }
//	}
//
//	// Next frame: keep the content around for reuse.
//	vt.ReleaseAll(allocs, vtexture.ReleaseReusable)
//
// # Slot Lifecycle
//
// Every slot is Free, Allocated or Reclaimable:
//
//	Free        --resolve-->            Allocated
//	Reclaimable --resolve (same tile)-> Allocated   (cache hit)
//	Reclaimable --resolve (new tile)--> Allocated   (eviction)
//	Allocated   --ReleaseReusable-->    Reclaimable
//	Allocated   --ReleaseInvalidate-->  Free
//
// Free slots are preferred over Reclaimable ones so cached content survives
// as long as possible. Both pools are LIFO stacks.
//
// # Coordinate Spaces
//
// Tiles are TileSize pixels square including Padding on every side. Virtual
// tile (x, y) covers the virtual rectangle starting at
// (x*A - Padding, y*A - Padding) where A = TileSize - 2*Padding, so the
// padding of neighbouring tiles overlaps. Slots are laid out row-major in
// the physical texture.
//
// # Concurrency
//
// VirtualTexture is not safe for concurrent use. Exhausting the slot pool is
// not an error: ResolveOrAllocate and AllocateRange report it with a false
// result and the caller decides whether to shrink the request or retry on a
// later frame.
package vtexture
