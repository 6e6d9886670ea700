package plan

import "github.com/draftline/floorplan-engine/internal/geometry"

// positionEpsilon absorbs float drift when testing offset containment.
const positionEpsilon = 1e-6

// Resolve returns the wall that currently owns the physical run referenced by
// id, in priority order: the record itself if live; its first live fragment if
// it was split (callers needing a specific physical position must verify
// containment, see FindWallForFixture); otherwise the nearest resolvable
// ancestor, which covers references to fragments that were merged away and
// possibly re-split at a shallower depth. A reference that exhausts all rules
// fails with a recoverable WallNotFound.
func (a *Arena) Resolve(id WallID) (*Wall, error) {
	w, ok := a.walls[id]
	if !ok {
		return nil, wallNotFound(id)
	}
	for w != nil {
		if w.Live {
			return w, nil
		}
		if frags := a.liveFragmentsOf(w); len(frags) > 0 {
			return frags[0], nil
		}
		if w.Parent == 0 {
			break
		}
		w = a.walls[w.Parent]
	}
	return nil, wallNotFound(id)
}

// FindWallForFixture locates the wall that physically contains the fixture,
// returning it together with the fixture's offset local to that wall. A wall
// can be split after a fixture is recorded against it, so a direct resolution
// is not enough: when the fixture's reference resolves somewhere else in the
// split graph, the live fragments of the root are searched for the one whose
// offset range along the original run contains the fixture and its width.
func FindWallForFixture(a *Arena, f Fixture) (*Wall, float64, error) {
	wall, offset, _, err := locateFixture(a, f)
	return wall, offset, err
}

// locateFixture additionally reports whether the returned wall physically
// contains the fixture's full range. It is false only on the best-effort
// fallback for a fixture that no live fragment can hold, such as the opening
// fixture whose span sits between the fragments it split off.
func locateFixture(a *Arena, f Fixture) (*Wall, float64, bool, error) {
	resolved, err := a.Resolve(f.WallID)
	if err != nil {
		return nil, 0, false, err
	}
	if resolved.ID == f.WallID {
		return resolved, f.Position, true, nil
	}

	// The referenced record is dead; measure the fixture along the root run.
	ref := a.walls[f.WallID]
	root := a.RootOf(f.WallID)
	base := geometry.Distance(root.Start, ref.Start) + f.Position
	width := f.WidthUnits(a.params.UnitsPerFoot)

	for _, frag := range a.liveFragmentsOf(root) {
		off := geometry.Distance(root.Start, frag.Start)
		if base >= off-positionEpsilon && base+width <= off+frag.LengthUnits()+positionEpsilon {
			return frag, base - off, true, nil
		}
	}

	// No fragment contains the fixture; fall back to the resolved wall so
	// the reference stays locatable.
	off := geometry.Distance(root.Start, resolved.Start)
	return resolved, base - off, false, nil
}
