package plan

import (
	"math"
	"testing"
)

func TestShouldSplitWall(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)

	if ShouldSplitWall(a, wall, []Fixture{cabinetAt(wall.ID, "cab-1", 40, 2)}) {
		t.Fatalf("a cabinet must not split a wall")
	}
	if !ShouldSplitWall(a, wall, []Fixture{doorAt(wall.ID, "door-1", 60, 3)}) {
		t.Fatalf("an opening door must split the wall")
	}

	closed := doorAt(wall.ID, "door-2", 60, 3)
	closed.Opening = false
	if ShouldSplitWall(a, wall, []Fixture{closed}) {
		t.Fatalf("a non-opening door must not split the wall")
	}
}

func TestSplitWallAtFixtures_NoOpeningsIsNoOp(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)

	result := SplitWallAtFixtures(a, wall, []Fixture{cabinetAt(wall.ID, "cab-1", 40, 2)})
	if len(result) != 1 || result[0] != wall {
		t.Fatalf("expected wall back unchanged, got %+v", result)
	}
	if !wall.Live {
		t.Fatalf("no-op split must leave the wall live")
	}
}

func TestSplitWallAtFixtures_FragmentGeometry(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	fragments := SplitWallAtFixtures(a, wall, []Fixture{doorAt(wall.ID, "door-1", 60, 3)})

	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}
	if fragments[0].Length.Display != "3'" || fragments[1].Length.Display != "4'" {
		t.Fatalf("expected 3' and 4' fragments, got %s and %s",
			fragments[0].Length.Display, fragments[1].Length.Display)
	}
	for i, f := range fragments {
		if f.Parent != wall.ID {
			t.Fatalf("fragment %d should parent to the wall", i)
		}
		if f.FragIndex != i {
			t.Fatalf("fragment %d carries index %d", i, f.FragIndex)
		}
		if len(f.Segments) != 0 || len(f.Fixtures) != 0 {
			t.Fatalf("fragment %d must start with empty derived state", i)
		}
	}

	dead, _ := a.Get(wall.ID)
	if dead.Live {
		t.Fatalf("split wall must no longer be live")
	}
	if len(dead.SplitInto) != 2 {
		t.Fatalf("split wall should record its fragments, got %v", dead.SplitInto)
	}
}

func TestSplitWallAtFixtures_InteriorOpeningsMakeThreeFragments(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	fixtures := []Fixture{
		doorAt(wall.ID, "door-1", 40, 1),
		doorAt(wall.ID, "win-1", 120, 2),
	}

	fragments := SplitWallAtFixtures(a, wall, fixtures)
	if len(fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(fragments))
	}
	spans := []float64{40, 60, 40}
	for i, want := range spans {
		if got := fragments[i].LengthUnits(); math.Abs(got-want) > 1e-9 {
			t.Fatalf("fragment %d: expected %f units, got %f", i, want, got)
		}
	}
}

func TestSplitWallAtFixtures_OpeningAtStartSkipsEmptyFragment(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)

	fragments := SplitWallAtFixtures(a, wall, []Fixture{doorAt(wall.ID, "door-1", 0, 3)})
	if len(fragments) != 1 {
		t.Fatalf("expected a single trailing fragment, got %d", len(fragments))
	}
	if math.Abs(fragments[0].LengthUnits()-140) > 1e-9 {
		t.Fatalf("expected 140-unit fragment, got %f", fragments[0].LengthUnits())
	}
}

func TestSplitWallAtFixtures_ResplittingFragmentRootsAtAncestor(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	first := SplitWallAtFixtures(a, wall, []Fixture{doorAt(wall.ID, "door-1", 60, 3)})

	nested := SplitWallAtFixtures(a, first[1], []Fixture{doorAt(first[1].ID, "win-1", 20, 1)})
	if len(nested) != 2 {
		t.Fatalf("expected 2 nested fragments, got %d", len(nested))
	}
	for i, f := range nested {
		if f.Parent != wall.ID {
			t.Fatalf("nested fragment %d must parent to the ultimate root, got %d", i, f.Parent)
		}
	}
}

func TestShouldMergeWall(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	door := doorAt(wall.ID, "door-1", 60, 3)
	cabinet := cabinetAt(wall.ID, "cab-1", 130, 2)

	SplitWallAtFixtures(a, wall, []Fixture{door, cabinet})

	// The opening is still recorded: no merge.
	if ShouldMergeWall(a, wall.ID, []Fixture{door, cabinet}) {
		t.Fatalf("merge must wait until no opening remains")
	}
	// After the door is removed, only the cabinet remains and it is not an
	// opening: the fragments reunify.
	if !ShouldMergeWall(a, wall.ID, []Fixture{cabinet}) {
		t.Fatalf("expected merge to trigger after opening removal")
	}
	// An unsplit wall never merges.
	other := tenFootWall(a)
	if ShouldMergeWall(a, other.ID, nil) {
		t.Fatalf("unsplit wall must not report mergeable")
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	originalStart, originalEnd := wall.Start, wall.End
	door := doorAt(wall.ID, "door-1", 60, 3)

	fragments := SplitWallAtFixtures(a, wall, []Fixture{door})
	if len(fragments) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(fragments))
	}

	// Removing the sole opening triggers the merge check.
	if !ShouldMergeWall(a, wall.ID, nil) {
		t.Fatalf("expected shouldMergeWall after removing the only opening")
	}

	root, _ := a.Get(wall.ID)
	merged := MergeWallSegments(a, fragments, root)

	if merged.Start != originalStart || merged.End != originalEnd {
		t.Fatalf("merge must reconstruct the original span, got %+v..%+v", merged.Start, merged.End)
	}
	if merged.Length.Display != "10'" {
		t.Fatalf("expected original 10' length back, got %s", merged.Length.Display)
	}
	if merged.Segments != nil || merged.Fixtures != nil {
		t.Fatalf("merge must clear derived state for recomputation")
	}
	for i, f := range fragments {
		got, _ := a.Get(f.ID)
		if got.Live {
			t.Fatalf("fragment %d must be retired by merge", i)
		}
	}
}

func TestMergeWallSegments_SortsByDistanceFromOriginalStart(t *testing.T) {
	a := newTestArena()
	wall := tenFootWall(a)
	fragments := SplitWallAtFixtures(a, wall, []Fixture{doorAt(wall.ID, "door-1", 60, 3)})

	// Hand the fragments over in reverse; merge still spans start to end.
	root, _ := a.Get(wall.ID)
	merged := MergeWallSegments(a, []*Wall{fragments[1], fragments[0]}, root)
	if merged.Start != wall.Start || merged.End != wall.End {
		t.Fatalf("merge must order fragments by distance from the original start")
	}
}
