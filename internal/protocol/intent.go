package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RequestMoveFixture struct {
	FixtureID   string  `json:"fixtureId"`
	NewPosition float64 `json:"newPosition"`
	Interactive bool    `json:"interactive"`
}

type RequestResizeFixture struct {
	FixtureID string  `json:"fixtureId"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

type RequestPlaceFixture struct {
	WallID            int      `json:"wallId"`
	PreferredPosition *float64 `json:"preferredPosition,omitempty"`
	Width             float64  `json:"width"`
	Height            float64  `json:"height"`
	Category          string   `json:"category"`
	IsOpening         bool     `json:"isOpening"`
}

type RequestRemoveFixture struct {
	FixtureID string `json:"fixtureId"`
}
