package plan

import (
	"fmt"
	"time"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// MoveResult reports a fixture move. When Moved is false the previous state
// is untouched and Reason says why; when true, Fixture and Wall carry the
// updated values (already installed in the arena) with segments recomputed.
type MoveResult struct {
	Moved    bool
	Reason   string
	Fixture  Fixture
	Wall     *Wall
	Segments []Segment
}

// MoveFixtureAlongWall validates newPosition for fixture and, on success,
// returns the updated fixture and its owning wall with derived state
// recomputed over the new placement plus every other fixture on that wall.
// In strict mode an invalid position leaves state unchanged; in interactive
// mode an out-of-bounds position is replaced by the clamped one instead of
// failing. The moved fixture is rebound to the wall it physically resolves
// to, so a fixture recorded against a since-split wall picks up its fragment
// reference the first time it moves.
func MoveFixtureAlongWall(a *Arena, fixture Fixture, newPosition float64, fixtures []Fixture, mode Mode) (MoveResult, error) {
	wall, _, err := FindWallForFixture(a, fixture)
	if err != nil {
		return MoveResult{}, err
	}

	placement := canPlaceIgnoring(a, wall, fixtures, fixture.Dimensions.Width, newPosition, mode, fixture.ID)
	if !placement.OK {
		return MoveResult{Moved: false, Reason: placement.Reason}, nil
	}

	moved := fixture
	moved.WallID = wall.ID
	moved.Position = placement.AdjustedPosition
	moved.UpdatedAt = time.Now()

	updatedWall, segments, err := refreshWall(a, wall, mergeFixture(fixtures, moved))
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Moved: true, Fixture: moved, Wall: updatedWall, Segments: segments}, nil
}

// AdjustWallForSizeChange applies a fixture dimension edit. A width change
// grows (or shrinks) the owning wall by the same delta: the wall's end point
// is recomputed by extending from its start along the existing angle, so the
// wall keeps accommodating the fixture rather than the fixture being resized
// to fit. Segments are recomputed over the new geometry. A shrink that would
// leave another fixture past the new wall end returns Moved=false with a
// reason and leaves state unchanged, like a rejected move.
func AdjustWallForSizeChange(a *Arena, fixture Fixture, newDims Dimensions, fixtures []Fixture) (MoveResult, error) {
	wall, _, err := FindWallForFixture(a, fixture)
	if err != nil {
		return MoveResult{}, err
	}
	params := a.params

	resized := fixture
	resized.WallID = wall.ID
	resized.Dimensions = newDims
	resized.UpdatedAt = time.Now()

	delta := geometry.FeetToUnits(newDims.Width-fixture.Dimensions.Width, params.UnitsPerFoot)
	adjusted := *wall
	if delta != 0 {
		newLen := wall.LengthUnits() + delta
		if newLen <= 0 {
			return MoveResult{}, invariantViolation(
				"size change of fixture %s would leave wall %d with length %.3f",
				fixture.ID, wall.ID, newLen)
		}
		// The resized fixture always fits the adjusted wall, but siblings keep
		// their absolute positions and a shrink can leave one hanging past the
		// new end.
		for _, p := range FixturesOn(a, wall, fixtures) {
			if p.Fixture.ID == fixture.ID {
				continue
			}
			end := p.Offset + p.Fixture.WidthUnits(params.UnitsPerFoot)
			if end > newLen+positionEpsilon {
				return MoveResult{Moved: false, Reason: fmt.Sprintf(
					"resizing would leave %s past the end of the wall", p.Fixture.ID)}, nil
			}
		}
		adjusted.End = geometry.Extend(wall.Start, geometry.Angle(wall.Start, wall.End), newLen)
	}

	updatedWall, segments, err := refreshWall(a, &adjusted, mergeFixture(fixtures, resized))
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Moved: true, Fixture: resized, Wall: updatedWall, Segments: segments}, nil
}

// PlaceFixture installs a new fixture on wall at the best available position
// (the caller's preferred one when valid, otherwise the documented fallback
// chain) and refreshes the wall's derived state. The final fallback position
// is best-effort and not guaranteed collision-free; if it does collide, the
// segment recomputation surfaces the invariant violation rather than
// committing a broken partition.
func PlaceFixture(a *Arena, wall *Wall, fixture Fixture, preferred *float64, fixtures []Fixture) (MoveResult, error) {
	pos := FindBestPosition(a, wall, fixtures, fixture.Dimensions.Width, preferred)

	placed := fixture
	placed.WallID = wall.ID
	placed.Position = pos
	placed.UpdatedAt = time.Now()

	updatedWall, segments, err := refreshWall(a, wall, mergeFixture(fixtures, placed))
	if err != nil {
		return MoveResult{}, err
	}
	return MoveResult{Moved: true, Fixture: placed, Wall: updatedWall, Segments: segments}, nil
}

// RecomputeWall rebuilds wall's derived state over the given fixtures, for
// callers that changed the fixture set itself (e.g. a removal).
func RecomputeWall(a *Arena, wall *Wall, fixtures []Fixture) (*Wall, error) {
	updated, _, err := refreshWall(a, wall, fixtures)
	return updated, err
}

// refreshWall rebuilds a wall's derived state (length, segments, fixture
// back-references) over the fixtures resolved to it, and installs the result
// in the arena.
func refreshWall(a *Arena, wall *Wall, merged []Fixture) (*Wall, []Segment, error) {
	updated := *wall
	updated.Length = geometry.MeasurementFromUnits(updated.LengthUnits(), a.params.UnitsPerFoot)
	updated.UpdatedAt = time.Now()
	a.Put(&updated)

	segments, err := ComputeSegments(a, &updated, merged)
	if err != nil {
		return nil, nil, err
	}
	updated.Segments = segments
	updated.Fixtures = nil
	for _, p := range FixturesOn(a, &updated, merged) {
		updated.Fixtures = append(updated.Fixtures, p.Fixture.ID)
	}
	return &updated, segments, nil
}

// mergeFixture returns fixtures with changed replacing its previous version,
// or appended if it is new.
func mergeFixture(fixtures []Fixture, changed Fixture) []Fixture {
	out := make([]Fixture, 0, len(fixtures)+1)
	replaced := false
	for _, f := range fixtures {
		if f.ID == changed.ID {
			out = append(out, changed)
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, changed)
	}
	return out
}
