package vtexture

import "fmt"

// Stats counts allocator activity since creation or the last ResetStats.
type Stats struct {
	// Hits counts resolves served by the slot the tile already owned.
	Hits uint64

	// Misses counts resolves that assigned a slot to a new owner.
	Misses uint64

	// Evictions counts misses served from the reclaimable pool, discarding
	// another tile's cached content.
	Evictions uint64

	// Failures counts resolves that found no slot.
	Failures uint64

	// Releases counts calls to Release, by mode.
	ReusableReleases   uint64
	InvalidateReleases uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 when nothing was resolved.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("hits=%d misses=%d evictions=%d failures=%d releases=%d/%d (reusable/invalidate) hit-rate=%.2f",
		s.Hits, s.Misses, s.Evictions, s.Failures, s.ReusableReleases, s.InvalidateReleases, s.HitRate())
}
