package protocol

type PointLite struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SegmentLite struct {
	Start     PointLite `json:"start"`
	End       PointLite `json:"end"`
	Offset    float64   `json:"offset"`
	Span      float64   `json:"span"`
	Type      string    `json:"type"`
	Display   string    `json:"display"`
	FixtureID string    `json:"fixtureId,omitempty"`
}

type WallLite struct {
	ID       int           `json:"id"`
	Parent   int           `json:"parent,omitempty"`
	Start    PointLite     `json:"start"`
	End      PointLite     `json:"end"`
	Display  string        `json:"display"`
	Segments []SegmentLite `json:"segments"`
	Fixtures []string      `json:"fixtures,omitempty"`
}

type FixtureLite struct {
	ID        string  `json:"id"`
	WallID    int     `json:"wallId"`
	Position  float64 `json:"position"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Category  string  `json:"category"`
	IsOpening bool    `json:"isOpening"`
	Rotation  float64 `json:"rotation"`
}

type Snapshot struct {
	PlanID          string        `json:"planId"`
	UnitsPerFoot    float64       `json:"unitsPerFoot"`
	LastEventID     int64         `json:"lastEventId"`
	Walls           []WallLite    `json:"walls"`
	Fixtures        []FixtureLite `json:"fixtures"`
	ProtocolVersion string        `json:"protocolVersion"`
}
