package main

import (
	"encoding/json"

	"github.com/draftline/floorplan-engine/internal/protocol"
)

// IntentHandlers turns drafting-surface intents into engine calls and
// broadcasts the resulting patches.
type IntentHandlers struct {
	engine      PlanEngine
	broadcaster Broadcaster
	logger      Logger
}

func NewIntentHandlers(engine PlanEngine, broadcaster Broadcaster, logger Logger) *IntentHandlers {
	return &IntentHandlers{
		engine:      engine,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// broadcastResult publishes a mutation's patches in dependency order: fixture
// changes first, then the owning wall, then any structural change that
// replaces walls wholesale.
func (h *IntentHandlers) broadcastResult(result *MutationResult) {
	if result == nil {
		return
	}
	if result.Rejected != nil {
		h.broadcaster.BroadcastEvent("PlacementRejected", *result.Rejected)
	}
	if result.FixtureUpdated != nil {
		h.broadcaster.BroadcastEvent("FixtureUpdated", *result.FixtureUpdated)
	}
	if result.FixtureRemoved != nil {
		h.broadcaster.BroadcastEvent("FixtureRemoved", *result.FixtureRemoved)
	}
	if result.WallUpdated != nil {
		h.broadcaster.BroadcastEvent("WallUpdated", *result.WallUpdated)
	}
	if result.WallsSplit != nil {
		h.broadcaster.BroadcastEvent("WallsSplit", *result.WallsSplit)
	}
	if result.WallsMerged != nil {
		h.broadcaster.BroadcastEvent("WallsMerged", *result.WallsMerged)
	}
}

func (h *IntentHandlers) HandleMoveFixture(req protocol.RequestMoveFixture) error {
	result, err := h.engine.ProcessMoveFixture(req)
	if err != nil {
		h.logger.Printf("move fixture failed: %v", err)
		return err
	}
	h.broadcastResult(result)
	return nil
}

func (h *IntentHandlers) HandleResizeFixture(req protocol.RequestResizeFixture) error {
	result, err := h.engine.ProcessResizeFixture(req)
	if err != nil {
		h.logger.Printf("resize fixture failed: %v", err)
		return err
	}
	h.broadcastResult(result)
	return nil
}

func (h *IntentHandlers) HandlePlaceFixture(req protocol.RequestPlaceFixture) error {
	result, err := h.engine.ProcessPlaceFixture(req)
	if err != nil {
		h.logger.Printf("place fixture failed: %v", err)
		return err
	}
	h.broadcastResult(result)
	return nil
}

func (h *IntentHandlers) HandleRemoveFixture(req protocol.RequestRemoveFixture) error {
	result, err := h.engine.ProcessRemoveFixture(req)
	if err != nil {
		h.logger.Printf("remove fixture failed: %v", err)
		return err
	}
	h.broadcastResult(result)
	return nil
}

// HandleMessage dispatches one raw websocket intent.
func (h *IntentHandlers) HandleMessage(data []byte) error {
	var env protocol.IntentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case "RequestMoveFixture":
		var req protocol.RequestMoveFixture
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandleMoveFixture(req)

	case "RequestResizeFixture":
		var req protocol.RequestResizeFixture
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandleResizeFixture(req)

	case "RequestPlaceFixture":
		var req protocol.RequestPlaceFixture
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandlePlaceFixture(req)

	case "RequestRemoveFixture":
		var req protocol.RequestRemoveFixture
		if err := json.Unmarshal(env.Payload, &req); err != nil {
			return err
		}
		return h.HandleRemoveFixture(req)

	default:
		h.logger.Printf("unknown message type: %s", env.Type)
		return nil
	}
}
