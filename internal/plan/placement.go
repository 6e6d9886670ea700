package plan

import (
	"fmt"
	"math"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// Placement is the outcome of a placement validation. When a drag position is
// clamped back into bounds, Adjusted is set and AdjustedPosition carries the
// position the caller should use; on rejection Reason says why. Rejection is
// a normal outcome recovered locally, not an error.
type Placement struct {
	OK               bool
	Reason           string
	AdjustedPosition float64
	Adjusted         bool
}

// CanPlace decides whether a fixture of widthFeet may occupy position on
// wall. ignoreID excludes the fixture being moved from the overlap check.
//
// Strict mode gives the crisp accept/reject needed on drop: any out-of-bounds
// position or overlap with another fixture rejects. Interactive mode keeps a
// live drag from visibly bouncing: positions protruding past a wall end by no
// more than InteractiveSlack ride along unadjusted (the transient violation
// the data model allows mid-drag), larger protrusions are clamped to the
// nearest valid edge and returned as AdjustedPosition, and overlap intrusion
// up to OverlapSlack is tolerated.
func CanPlace(a *Arena, wall *Wall, fixtures []Fixture, widthFeet, position float64, mode Mode) Placement {
	return canPlaceIgnoring(a, wall, fixtures, widthFeet, position, mode, "")
}

func canPlaceIgnoring(a *Arena, wall *Wall, fixtures []Fixture, widthFeet, position float64, mode Mode, ignoreID string) Placement {
	params := a.params
	width := geometry.FeetToUnits(widthFeet, params.UnitsPerFoot)
	wallLen := wall.LengthUnits()

	pos := position
	adjusted := false
	if pos < 0 || pos+width > wallLen {
		if mode == ModeStrict {
			if pos < 0 {
				return Placement{Reason: "fixture extends before the start of the wall"}
			}
			return Placement{Reason: "fixture extends beyond the end of the wall"}
		}
		if pos < -params.InteractiveSlack || pos+width > wallLen+params.InteractiveSlack {
			pos = math.Max(0, math.Min(pos, wallLen-width))
			adjusted = true
		}
	}

	slack := 0.0
	if mode == ModeInteractive {
		slack = params.OverlapSlack
	}
	for _, p := range FixturesOn(a, wall, fixtures) {
		if p.Fixture.ID == ignoreID {
			continue
		}
		otherStart := p.Offset
		otherEnd := p.Offset + p.Fixture.WidthUnits(params.UnitsPerFoot)
		if pos < otherEnd-slack && pos+width > otherStart+slack {
			return Placement{Reason: fmt.Sprintf("fixture would overlap %s", p.Fixture.ID)}
		}
	}

	return Placement{OK: true, AdjustedPosition: pos, Adjusted: adjusted}
}

// FindBestPosition picks a position for a fixture of widthFeet on wall,
// trying in order the caller's preferred position, the geometric center of
// the wall, position zero, and finally max(0, wallLength-width). The final
// fallback is a best-effort placement for an oversized fixture on a short
// wall and is not guaranteed collision-free; callers must not assume
// otherwise.
func FindBestPosition(a *Arena, wall *Wall, fixtures []Fixture, widthFeet float64, preferred *float64) float64 {
	params := a.params
	width := geometry.FeetToUnits(widthFeet, params.UnitsPerFoot)
	wallLen := wall.LengthUnits()

	if preferred != nil {
		if p := CanPlace(a, wall, fixtures, widthFeet, *preferred, ModeStrict); p.OK {
			return *preferred
		}
	}
	center := (wallLen - width) / 2
	if center >= 0 {
		if p := CanPlace(a, wall, fixtures, widthFeet, center, ModeStrict); p.OK {
			return center
		}
	}
	if p := CanPlace(a, wall, fixtures, widthFeet, 0, ModeStrict); p.OK {
		return 0
	}
	return math.Max(0, wallLen-width)
}
