package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/draftline/floorplan-engine/internal/plan"
	"github.com/draftline/floorplan-engine/internal/protocol"
)

// PlanEngineImpl implements the PlanEngine interface. Every operation clones
// the arena, runs the pure plan functions against the clone, and swaps the
// result into the state container only on success, so a rejected or failed
// mutation leaves the previous state fully intact.
type PlanEngineImpl struct {
	state  *PlanState
	logger Logger
}

// NewPlanEngine creates a plan engine over the given state container.
func NewPlanEngine(state *PlanState, logger Logger) *PlanEngineImpl {
	return &PlanEngineImpl{state: state, logger: logger}
}

func (e *PlanEngineImpl) ProcessMoveFixture(req protocol.RequestMoveFixture) (*MutationResult, error) {
	e.state.Lock.Lock()
	defer e.state.Lock.Unlock()

	fixture, ok := e.state.Fixtures[req.FixtureID]
	if !ok {
		return nil, fmt.Errorf("fixture %s not found", req.FixtureID)
	}
	mode := plan.ModeStrict
	if req.Interactive {
		mode = plan.ModeInteractive
	}

	arena := e.state.Arena.Clone()
	fixtures := e.state.fixtureList()
	result, err := plan.MoveFixtureAlongWall(arena, fixture, req.NewPosition, fixtures, mode)
	if err != nil {
		return nil, fmt.Errorf("move of fixture %s failed: %w", req.FixtureID, err)
	}
	if !result.Moved {
		e.logger.Printf("move of fixture %s rejected: %s", req.FixtureID, result.Reason)
		return &MutationResult{Rejected: &protocol.PlacementRejected{
			FixtureID: req.FixtureID,
			Reason:    result.Reason,
		}}, nil
	}

	out := &MutationResult{
		FixtureUpdated: &protocol.FixtureUpdated{Fixture: fixtureLite(result.Fixture)},
		WallUpdated:    &protocol.WallUpdated{Wall: wallLite(result.Wall)},
	}

	// Settled moves of an opening may change the split topology; a live drag
	// never does (an abandoned drag must not leave structural changes).
	if mode == plan.ModeStrict {
		split, err := e.splitIfNeeded(arena, result.Wall, mergeFixtureList(fixtures, result.Fixture))
		if err != nil {
			return nil, err
		}
		out.WallsSplit = split
	}

	e.state.Arena = arena
	e.state.Fixtures[req.FixtureID] = result.Fixture
	return out, nil
}

func (e *PlanEngineImpl) ProcessResizeFixture(req protocol.RequestResizeFixture) (*MutationResult, error) {
	e.state.Lock.Lock()
	defer e.state.Lock.Unlock()

	fixture, ok := e.state.Fixtures[req.FixtureID]
	if !ok {
		return nil, fmt.Errorf("fixture %s not found", req.FixtureID)
	}

	arena := e.state.Arena.Clone()
	fixtures := e.state.fixtureList()
	dims := plan.Dimensions{Width: req.Width, Height: req.Height}
	result, err := plan.AdjustWallForSizeChange(arena, fixture, dims, fixtures)
	if err != nil {
		return nil, fmt.Errorf("resize of fixture %s failed: %w", req.FixtureID, err)
	}
	if !result.Moved {
		e.logger.Printf("resize of fixture %s rejected: %s", req.FixtureID, result.Reason)
		return &MutationResult{Rejected: &protocol.PlacementRejected{
			FixtureID: req.FixtureID,
			Reason:    result.Reason,
		}}, nil
	}

	e.state.Arena = arena
	e.state.Fixtures[req.FixtureID] = result.Fixture
	return &MutationResult{
		FixtureUpdated: &protocol.FixtureUpdated{Fixture: fixtureLite(result.Fixture)},
		WallUpdated:    &protocol.WallUpdated{Wall: wallLite(result.Wall)},
	}, nil
}

func (e *PlanEngineImpl) ProcessPlaceFixture(req protocol.RequestPlaceFixture) (*MutationResult, error) {
	e.state.Lock.Lock()
	defer e.state.Lock.Unlock()

	arena := e.state.Arena.Clone()
	wall, err := arena.Resolve(plan.WallID(req.WallID))
	if err != nil {
		return nil, fmt.Errorf("placement on wall %d failed: %w", req.WallID, err)
	}

	fixture := plan.Fixture{
		ID:         uuid.NewString(),
		Dimensions: plan.Dimensions{Width: req.Width, Height: req.Height},
		Category:   plan.FixtureCategory(req.Category),
		Opening:    req.IsOpening,
	}
	fixtures := e.state.fixtureList()
	result, err := plan.PlaceFixture(arena, wall, fixture, req.PreferredPosition, fixtures)
	if err != nil {
		return nil, fmt.Errorf("placement on wall %d failed: %w", req.WallID, err)
	}

	out := &MutationResult{
		FixtureUpdated: &protocol.FixtureUpdated{Fixture: fixtureLite(result.Fixture)},
		WallUpdated:    &protocol.WallUpdated{Wall: wallLite(result.Wall)},
	}
	split, err := e.splitIfNeeded(arena, result.Wall, mergeFixtureList(fixtures, result.Fixture))
	if err != nil {
		return nil, err
	}
	out.WallsSplit = split

	e.state.Arena = arena
	e.state.Fixtures[result.Fixture.ID] = result.Fixture
	return out, nil
}

func (e *PlanEngineImpl) ProcessRemoveFixture(req protocol.RequestRemoveFixture) (*MutationResult, error) {
	e.state.Lock.Lock()
	defer e.state.Lock.Unlock()

	fixture, ok := e.state.Fixtures[req.FixtureID]
	if !ok {
		return nil, fmt.Errorf("fixture %s not found", req.FixtureID)
	}

	arena := e.state.Arena.Clone()
	remaining := make([]plan.Fixture, 0, len(e.state.Fixtures)-1)
	for _, f := range e.state.fixtureList() {
		if f.ID != req.FixtureID {
			remaining = append(remaining, f)
		}
	}

	out := &MutationResult{
		FixtureRemoved: &protocol.FixtureRemoved{FixtureID: req.FixtureID},
	}

	wall, _, err := plan.FindWallForFixture(arena, fixture)
	if err != nil {
		// The reference was already dangling; dropping the fixture is the
		// whole repair.
		e.logger.Printf("removing fixture %s with dangling wall reference %d", fixture.ID, fixture.WallID)
		e.state.Arena = arena
		delete(e.state.Fixtures, req.FixtureID)
		return out, nil
	}

	// A removal is the trigger for the merge check: once no opening remains
	// anywhere on the wall's split tree, the fragments reunify.
	root := arena.RootOf(wall.ID)
	if plan.ShouldMergeWall(arena, wall.ID, remaining) {
		fragments := arena.LiveFragments(root.ID)
		merged := plan.MergeWallSegments(arena, fragments, root)
		merged, err := plan.RecomputeWall(arena, merged, remaining)
		if err != nil {
			return nil, fmt.Errorf("merge after removing fixture %s failed: %w", req.FixtureID, err)
		}
		ids := make([]int, len(fragments))
		for i, f := range fragments {
			ids[i] = int(f.ID)
		}
		out.WallsMerged = &protocol.WallsMerged{FragmentIDs: ids, Wall: wallLite(merged)}
	} else {
		updated, err := plan.RecomputeWall(arena, wall, remaining)
		if err != nil {
			return nil, fmt.Errorf("refresh after removing fixture %s failed: %w", req.FixtureID, err)
		}
		out.WallUpdated = &protocol.WallUpdated{Wall: wallLite(updated)}
	}

	e.state.Arena = arena
	delete(e.state.Fixtures, req.FixtureID)
	return out, nil
}

// splitIfNeeded runs the split check on wall and, when an opening fixture is
// present, replaces it with fragments whose derived state is recomputed for
// the broadcast.
func (e *PlanEngineImpl) splitIfNeeded(arena *plan.Arena, wall *plan.Wall, fixtures []plan.Fixture) (*protocol.WallsSplit, error) {
	if !plan.ShouldSplitWall(arena, wall, fixtures) {
		return nil, nil
	}
	fragments := plan.SplitWallAtFixtures(arena, wall, fixtures)
	if len(fragments) == 1 && fragments[0].ID == wall.ID {
		return nil, nil
	}
	patch := &protocol.WallsSplit{WallID: int(wall.ID)}
	for _, frag := range fragments {
		refreshed, err := plan.RecomputeWall(arena, frag, fixtures)
		if err != nil {
			return nil, fmt.Errorf("split of wall %d failed: %w", wall.ID, err)
		}
		patch.Fragments = append(patch.Fragments, wallLite(refreshed))
	}
	e.logger.Printf("wall %d split into %d fragments", wall.ID, len(patch.Fragments))
	return patch, nil
}

// Snapshot builds the full picture for a newly loaded drafting surface.
func (e *PlanEngineImpl) Snapshot() protocol.Snapshot {
	e.state.Lock.Lock()
	defer e.state.Lock.Unlock()

	fixtures := e.state.fixtureList()
	snap := protocol.Snapshot{
		PlanID:          e.state.PlanID,
		UnitsPerFoot:    e.state.Arena.Params().UnitsPerFoot,
		ProtocolVersion: "v0",
	}
	for _, w := range e.state.Arena.Live() {
		segments, err := plan.ComputeSegments(e.state.Arena, w, fixtures)
		if err != nil {
			e.logger.Printf("segment recomputation for wall %d failed: %v", w.ID, err)
			segments = w.Segments
		}
		lite := wallLite(w)
		lite.Segments = segmentLites(segments)
		snap.Walls = append(snap.Walls, lite)
	}
	for _, f := range fixtures {
		snap.Fixtures = append(snap.Fixtures, fixtureLite(f))
	}
	return snap
}

// mergeFixtureList returns fixtures with changed replacing its previous
// version, or appended if new.
func mergeFixtureList(fixtures []plan.Fixture, changed plan.Fixture) []plan.Fixture {
	out := make([]plan.Fixture, 0, len(fixtures)+1)
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
