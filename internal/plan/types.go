package plan

import (
	"time"

	"github.com/draftline/floorplan-engine/internal/geometry"
)

// WallID is a stable handle into the wall arena. The zero value is never a
// valid wall.
type WallID int

type FixtureCategory string

const (
	CategoryDoor    FixtureCategory = "door"
	CategoryWindow  FixtureCategory = "window"
	CategoryCabinet FixtureCategory = "cabinet"
	CategoryCustom  FixtureCategory = "custom"
)

// Dimensions are real-world fixture dimensions in feet.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fixture is a door, window, cabinet or custom object placed on a wall.
// Position is measured in linear units from the start of the wall record it
// references. That record may since have been split; resolution is dynamic
// (see Arena.Resolve and FindWallForFixture), so positions stay meaningful
// without rewriting every fixture at split time.
type Fixture struct {
	ID         string          `json:"id"`
	WallID     WallID          `json:"wallId"`
	Position   float64         `json:"position"`
	Dimensions Dimensions      `json:"dimensions"`
	Category   FixtureCategory `json:"category"`
	Opening    bool            `json:"isOpening"`
	Rotation   float64         `json:"rotation"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// WidthUnits returns the fixture width in linear units at the given scale.
func (f Fixture) WidthUnits(unitsPerFoot float64) float64 {
	return geometry.FeetToUnits(f.Dimensions.Width, unitsPerFoot)
}

// IsOpening reports whether placing this fixture structurally splits a wall.
// Only doors and windows flagged as openings do.
func (f Fixture) IsOpening() bool {
	return f.Opening && (f.Category == CategoryDoor || f.Category == CategoryWindow)
}

type SegmentKind string

const (
	SegmentWall       SegmentKind = "wall"
	SegmentFixtureGap SegmentKind = "fixture_gap"
)

// Segment is a derived partition element of a wall: a solid stretch or the
// gap occupied by a fixture. Segments are a projection of (Wall, []Fixture)
// and are never authoritative.
type Segment struct {
	Start     geometry.Point       `json:"start"`
	End       geometry.Point       `json:"end"`
	Offset    float64              `json:"offset"`
	Span      float64              `json:"span"`
	Length    geometry.Measurement `json:"length"`
	Kind      SegmentKind          `json:"type"`
	FixtureID string               `json:"fixtureId,omitempty"`
}

// Wall is one physical run in the floor plan. An original wall has Parent 0;
// a fragment produced by a split parents to the ultimate root wall it was cut
// from, however many times its ancestors were re-split. Live marks the records
// that currently represent physical runs: a split wall stays in the arena as a
// dead record with SplitInto listing its fragments, and a merge revives the
// root while killing the fragments.
type Wall struct {
	ID             WallID               `json:"id"`
	Parent         WallID               `json:"parent,omitempty"`
	FragIndex      int                  `json:"fragIndex,omitempty"`
	Start          geometry.Point       `json:"start"`
	End            geometry.Point       `json:"end"`
	OriginalStart  geometry.Point       `json:"originalStart"`
	OriginalEnd    geometry.Point       `json:"originalEnd"`
	Length         geometry.Measurement `json:"length"`
	OriginalLength geometry.Measurement `json:"originalLength"`
	Segments       []Segment            `json:"segments"`
	Fixtures       []string             `json:"fixtures"`
	Live           bool                 `json:"-"`
	SplitInto      []WallID             `json:"-"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// LengthUnits returns the wall's current length in linear units. The Length
// measurement must always equal this value run through the unit scale.
func (w *Wall) LengthUnits() float64 {
	return geometry.Distance(w.Start, w.End)
}

// IsFragment reports whether this wall was produced by splitting another.
func (w *Wall) IsFragment() bool {
	return w.Parent != 0
}

// Params carries the tolerances and unit scale for validation so the engine
// holds no global state. All values are linear units except UnitsPerFoot.
type Params struct {
	// UnitsPerFoot is the drafting surface scale.
	UnitsPerFoot float64
	// InteractiveSlack is how far a dragged fixture may protrude past a wall
	// end before it is clamped back to the nearest valid edge.
	InteractiveSlack float64
	// OverlapSlack is how deeply a dragged fixture may intrude into another
	// fixture's span before the drag position is rejected.
	OverlapSlack float64
}

// DefaultParams returns the production tolerances at the fixed 20-units-per-
// foot scale.
func DefaultParams() Params {
	return Params{
		UnitsPerFoot:     geometry.UnitsPerFoot,
		InteractiveSlack: 5,
		OverlapSlack:     2,
	}
}

// Mode selects between the tolerant validation used while a fixture is being
// dragged and the strict validation used when it settles.
type Mode int

const (
	// ModeStrict rejects any bounds or overlap violation outright.
	ModeStrict Mode = iota
	// ModeInteractive clamps out-of-bounds positions to the nearest valid
	// edge and tolerates small overlaps, so the fixture does not bounce while
	// the pointer is still moving.
	ModeInteractive
)
