package plan

import (
	"sort"
	"time"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// Arena owns every wall record ever created, live or not. Dead records are
// kept so that stale references (a fixture still pointing at a wall that was
// split or merged away) remain resolvable through the parent/fragment graph.
type Arena struct {
	walls  map[WallID]*Wall
	nextID WallID
	params Params
}

func NewArena(params Params) *Arena {
	return &Arena{
		walls:  make(map[WallID]*Wall),
		nextID: 1,
		params: params,
	}
}

func (a *Arena) Params() Params {
	return a.params
}

// NewWall creates and registers an original (unsplit) wall.
func (a *Arena) NewWall(start, end geometry.Point) *Wall {
	length := geometry.MeasurementFromUnits(geometry.Distance(start, end), a.params.UnitsPerFoot)
	w := &Wall{
		ID:             a.nextID,
		Start:          start,
		End:            end,
		OriginalStart:  start,
		OriginalEnd:    end,
		Length:         length,
		OriginalLength: length,
		Live:           true,
		UpdatedAt:      time.Now(),
	}
	a.nextID++
	a.walls[w.ID] = w
	return w
}

// Get returns the raw record for id, live or dead.
func (a *Arena) Get(id WallID) (*Wall, bool) {
	w, ok := a.walls[id]
	return w, ok
}

// Put installs an updated wall value, replacing the record with the same id.
func (a *Arena) Put(w *Wall) {
	a.walls[w.ID] = w
	if w.ID >= a.nextID {
		a.nextID = w.ID + 1
	}
}

// Live returns all live walls ordered by id.
func (a *Arena) Live() []*Wall {
	var out []*Wall
	for _, w := range a.walls {
		if w.Live {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RootOf climbs parent links to the ultimate ancestor of id. For an original
// wall that is the wall itself.
func (a *Arena) RootOf(id WallID) *Wall {
	w, ok := a.walls[id]
	if !ok {
		return nil
	}
	for w.Parent != 0 {
		p, ok := a.walls[w.Parent]
		if !ok {
			break
		}
		w = p
	}
	return w
}

// LiveFragments returns the live walls currently representing the split tree
// rooted at id, in split order.
func (a *Arena) LiveFragments(id WallID) []*Wall {
	return a.liveFragmentsOf(a.RootOf(id))
}

// liveFragmentsOf collects the live descendants of w in split order,
// descending through nested splits. If w itself is live it is the sole entry.
func (a *Arena) liveFragmentsOf(w *Wall) []*Wall {
	if w == nil {
		return nil
	}
	if w.Live {
		return []*Wall{w}
	}
	var out []*Wall
	for _, id := range w.SplitInto {
		if f, ok := a.walls[id]; ok {
			out = append(out, a.liveFragmentsOf(f)...)
		}
	}
	return out
}

// Clone deep-copies the arena so a mutation can be built and then swapped in
// atomically by the owning state container.
func (a *Arena) Clone() *Arena {
	c := &Arena{
		walls:  make(map[WallID]*Wall, len(a.walls)),
		nextID: a.nextID,
		params: a.params,
	}
	for id, w := range a.walls {
		cw := *w
		cw.Segments = append([]Segment(nil), w.Segments...)
		cw.Fixtures = append([]string(nil), w.Fixtures...)
		cw.SplitInto = append([]WallID(nil), w.SplitInto...)
		c.walls[id] = &cw
	}
	return c
}
