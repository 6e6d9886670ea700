package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type FixtureUpdated struct {
	Fixture FixtureLite `json:"fixture"`
}

type FixtureRemoved struct {
	FixtureID string `json:"fixtureId"`
}

type WallUpdated struct {
	Wall WallLite `json:"wall"`
}

type WallsSplit struct {
	WallID    int        `json:"wallId"`
	Fragments []WallLite `json:"fragments"`
}

type WallsMerged struct {
	FragmentIDs []int    `json:"fragmentIds"`
	Wall        WallLite `json:"wall"`
}

type PlacementRejected struct {
	FixtureID string `json:"fixtureId,omitempty"`
	Reason    string `json:"reason"`
}
