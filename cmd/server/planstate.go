package main

import (
	"sort"
	"sync"

	"github.com/draftline/floorplan-engine/internal/plan"
	"github.com/draftline/floorplan-engine/internal/protocol"
)

// PlanState is the owning state container for the wall/fixture graph. Engine
// operations build new wall and fixture values on a cloned arena and install
// them here under the lock, so no reader ever observes a partially updated
// graph (e.g. a wall whose segments don't yet reflect a just-moved fixture).
type PlanState struct {
	Lock     sync.Mutex
	PlanID   string
	Arena    *plan.Arena
	Fixtures map[string]plan.Fixture
}

func NewPlanState(planID string, params plan.Params) *PlanState {
	return &PlanState{
		PlanID:   planID,
		Arena:    plan.NewArena(params),
		Fixtures: make(map[string]plan.Fixture),
	}
}

// fixtureList returns the fixtures in deterministic order. Callers must hold
// the lock.
func (s *PlanState) fixtureList() []plan.Fixture {
	out := make([]plan.Fixture, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func segmentLites(segments []plan.Segment) []protocol.SegmentLite {
	out := make([]protocol.SegmentLite, 0, len(segments))
	for _, s := range segments {
		out = append(out, protocol.SegmentLite{
			Start:     protocol.PointLite{X: s.Start.X, Y: s.Start.Y},
			End:       protocol.PointLite{X: s.End.X, Y: s.End.Y},
			Offset:    s.Offset,
			Span:      s.Span,
			Type:      string(s.Kind),
			Display:   s.Length.Display,
			FixtureID: s.FixtureID,
		})
	}
	return out
}

func wallLite(w *plan.Wall) protocol.WallLite {
	return protocol.WallLite{
		ID:       int(w.ID),
		Parent:   int(w.Parent),
		Start:    protocol.PointLite{X: w.Start.X, Y: w.Start.Y},
		End:      protocol.PointLite{X: w.End.X, Y: w.End.Y},
		Display:  w.Length.Display,
		Segments: segmentLites(w.Segments),
		Fixtures: w.Fixtures,
	}
}

func fixtureLite(f plan.Fixture) protocol.FixtureLite {
	return protocol.FixtureLite{
		ID:        f.ID,
		WallID:    int(f.WallID),
		Position:  f.Position,
		Width:     f.Dimensions.Width,
		Height:    f.Dimensions.Height,
		Category:  string(f.Category),
		IsOpening: f.Opening,
		Rotation:  f.Rotation,
	}
}
