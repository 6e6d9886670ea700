package main

import (
	"github.com/draftline/floorplan-engine/internal/protocol"
)

// Broadcaster interface for WebSocket communication
type Broadcaster interface {
	BroadcastEvent(eventType string, payload interface{})
}

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

// SequenceGenerator interface for sequence number generation
type SequenceGenerator interface {
	Next() uint64
}

// PlanEngine is the function-call contract the drafting surface consumes.
type PlanEngine interface {
	ProcessMoveFixture(req protocol.RequestMoveFixture) (*MutationResult, error)
	ProcessResizeFixture(req protocol.RequestResizeFixture) (*MutationResult, error)
	ProcessPlaceFixture(req protocol.RequestPlaceFixture) (*MutationResult, error)
	ProcessRemoveFixture(req protocol.RequestRemoveFixture) (*MutationResult, error)
	Snapshot() protocol.Snapshot
}

// MutationResult carries every patch produced by one engine operation, in
// the order they should be broadcast.
type MutationResult struct {
	Rejected       *protocol.PlacementRejected
	FixtureUpdated *protocol.FixtureUpdated
	FixtureRemoved *protocol.FixtureRemoved
	WallUpdated    *protocol.WallUpdated
	WallsSplit     *protocol.WallsSplit
	WallsMerged    *protocol.WallsMerged
}
