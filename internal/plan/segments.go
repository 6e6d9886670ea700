package plan

import (
	"sort"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// PlacedFixture pairs a fixture with its offset local to a resolved wall.
type PlacedFixture struct {
	Fixture Fixture
	Offset  float64
}

// FixturesOn returns the fixtures physically contained by wall, with local
// offsets, in ascending offset order (stable for equal offsets). Fixtures
// whose wall reference cannot be resolved are skipped (dropping or repairing
// them is the caller's decision, not this projection's), as are fixtures that
// only fall back to wall without fitting it, such as an opening straddling
// the gap between the fragments it split off.
func FixturesOn(a *Arena, wall *Wall, fixtures []Fixture) []PlacedFixture {
	var placed []PlacedFixture
	for _, f := range fixtures {
		owner, offset, contained, err := locateFixture(a, f)
		if err != nil || !contained {
			continue
		}
		if owner.ID == wall.ID {
			placed = append(placed, PlacedFixture{Fixture: f, Offset: offset})
		}
	}
	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Offset < placed[j].Offset })
	return placed
}

// ComputeSegments partitions wall from start to end into solid-wall and
// fixture-gap segments, walking the resolved fixtures in position order. The
// result is deterministic and always spans exactly [start, end]: a wall with
// no fixtures yields one full-span wall segment. A fixture configuration that
// would produce a negative gap means an upstream mutation broke the
// no-overlap invariant; that is surfaced as an error, never clamped away. The
// same goes for a partition overrunning the wall end: fixtures may protrude
// only by the interactive drag slack (the transient state a live drag is
// allowed to hold), anything past that is corrupted input.
func ComputeSegments(a *Arena, wall *Wall, fixtures []Fixture) ([]Segment, error) {
	params := a.params
	wallLen := wall.LengthUnits()
	placed := FixturesOn(a, wall, fixtures)

	var segments []Segment
	cursor := 0.0
	for _, p := range placed {
		if p.Offset < cursor-positionEpsilon {
			return nil, invariantViolation(
				"fixture %s at offset %.3f overlaps segment cursor %.3f on wall %d",
				p.Fixture.ID, p.Offset, cursor, wall.ID)
		}
		if p.Offset > cursor {
			segments = append(segments, makeSegment(wall, cursor, p.Offset, SegmentWall, "", params))
		}
		width := p.Fixture.WidthUnits(params.UnitsPerFoot)
		segments = append(segments, makeSegment(wall, p.Offset, p.Offset+width, SegmentFixtureGap, p.Fixture.ID, params))
		cursor = p.Offset + width
	}
	if cursor > wallLen+params.InteractiveSlack+positionEpsilon {
		return nil, invariantViolation(
			"fixtures on wall %d extend %.3f units past its end",
			wall.ID, cursor-wallLen)
	}
	if cursor < wallLen-positionEpsilon || len(segments) == 0 {
		segments = append(segments, makeSegment(wall, cursor, wallLen, SegmentWall, "", params))
	}
	return segments, nil
}

func makeSegment(wall *Wall, from, to float64, kind SegmentKind, fixtureID string, params Params) Segment {
	return Segment{
		Start:     geometry.PointAlong(wall.Start, wall.End, from),
		End:       geometry.PointAlong(wall.Start, wall.End, to),
		Offset:    from,
		Span:      to - from,
		Length:    geometry.MeasurementFromUnits(to-from, params.UnitsPerFoot),
		Kind:      kind,
		FixtureID: fixtureID,
	}
}
