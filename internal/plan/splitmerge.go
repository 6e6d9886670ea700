package plan

import (
	"sort"
	"time"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// openingsOn returns the opening fixtures resolved to wall in ascending
// offset order.
func openingsOn(a *Arena, wall *Wall, fixtures []Fixture) []PlacedFixture {
	var openings []PlacedFixture
	for _, p := range FixturesOn(a, wall, fixtures) {
		if p.Fixture.IsOpening() {
			openings = append(openings, p)
		}
	}
	return openings
}

// ShouldSplitWall reports whether wall must be structurally split: true only
// when an opening fixture (a door or window) is resolved to it.
func ShouldSplitWall(a *Arena, wall *Wall, fixtures []Fixture) bool {
	return len(openingsOn(a, wall, fixtures)) > 0
}

// SplitWallAtFixtures replaces wall with one independent fragment per solid
// stretch between its opening fixtures (and before the first / after the
// last). Fragments parent to the wall's ultimate root, so re-splitting a
// fragment still roots its pieces at the original ancestor. Each fragment
// carries its own start/end/length and empty derived state; consumers
// recompute segments lazily. With no opening fixtures, or none that leaves a
// solid stretch, the wall is returned unchanged.
func SplitWallAtFixtures(a *Arena, wall *Wall, fixtures []Fixture) []*Wall {
	openings := openingsOn(a, wall, fixtures)
	if len(openings) == 0 {
		return []*Wall{wall}
	}
	params := a.params
	root := a.RootOf(wall.ID)
	wallLen := wall.LengthUnits()
	now := time.Now()

	var fragments []*Wall
	emit := func(from, to float64) {
		start := geometry.PointAlong(wall.Start, wall.End, from)
		end := geometry.PointAlong(wall.Start, wall.End, to)
		length := geometry.MeasurementFromUnits(to-from, params.UnitsPerFoot)
		f := &Wall{
			ID:             a.nextID,
			Parent:         root.ID,
			FragIndex:      len(fragments),
			Start:          start,
			End:            end,
			OriginalStart:  start,
			OriginalEnd:    end,
			Length:         length,
			OriginalLength: length,
			Live:           true,
			UpdatedAt:      now,
		}
		a.nextID++
		a.walls[f.ID] = f
		fragments = append(fragments, f)
	}

	cursor := 0.0
	for _, opening := range openings {
		if opening.Offset > cursor+positionEpsilon {
			emit(cursor, opening.Offset)
		}
		cursor = opening.Offset + opening.Fixture.WidthUnits(params.UnitsPerFoot)
	}
	if cursor < wallLen-positionEpsilon {
		emit(cursor, wallLen)
	}

	if len(fragments) == 0 {
		// A single opening spanning the whole wall leaves nothing solid to
		// keep; splitting here would strand the wall with no live fragments.
		return []*Wall{wall}
	}

	dead := *wall
	dead.Live = false
	dead.SplitInto = make([]WallID, len(fragments))
	for i, f := range fragments {
		dead.SplitInto[i] = f.ID
	}
	dead.UpdatedAt = now
	a.Put(&dead)
	return fragments
}

// ShouldMergeWall reports whether the split wall rooted at id can be
// reunified: true only when no opening fixture remains anywhere on the wall's
// split tree. Intended to be checked after a fixture removal. The straddle
// fallback in fixture location means an opening is counted by the wall family
// it references, not by fragment containment (the opening that caused a split
// sits between fragments and is contained by none of them).
func ShouldMergeWall(a *Arena, id WallID, fixtures []Fixture) bool {
	root := a.RootOf(id)
	if root == nil || root.Live {
		return false
	}
	for _, f := range fixtures {
		if !f.IsOpening() {
			continue
		}
		if ref, ok := a.walls[f.WallID]; ok && a.RootOf(ref.ID).ID == root.ID {
			return false
		}
	}
	return true
}

// MergeWallSegments reunifies fragments into a single wall spanning from the
// fragment nearest originalWall's start to the end of the farthest one, with
// length recomputed from that span and derived state cleared for the caller
// to recompute. Contiguity is not validated here; callers only invoke this
// once ShouldMergeWall holds. The original wall record is revived in the
// arena and the fragments retired.
func MergeWallSegments(a *Arena, fragments []*Wall, originalWall *Wall) *Wall {
	if len(fragments) == 0 {
		return originalWall
	}
	params := a.params
	sorted := append([]*Wall(nil), fragments...)
	sort.Slice(sorted, func(i, j int) bool {
		return geometry.Distance(originalWall.Start, sorted[i].Start) <
			geometry.Distance(originalWall.Start, sorted[j].Start)
	})

	first := sorted[0]
	last := sorted[len(sorted)-1]
	merged := *originalWall
	merged.Start = first.Start
	merged.End = last.End
	merged.Length = geometry.MeasurementFromUnits(merged.LengthUnits(), params.UnitsPerFoot)
	merged.Segments = nil
	merged.Fixtures = nil
	merged.Live = true
	merged.SplitInto = nil
	merged.UpdatedAt = time.Now()
	a.Put(&merged)

	for _, frag := range sorted {
		dead := *frag
		dead.Live = false
		a.Put(&dead)
	}
	return &merged
}
