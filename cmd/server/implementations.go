package main

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/draftline/floorplan-engine/internal/protocol"
	"github.com/draftline/floorplan-engine/internal/ws"
)

// BroadcasterImpl wraps each patch in a sequenced envelope and fans it out
// through the websocket hub.
type BroadcasterImpl struct {
	hub      *ws.Hub
	sequence SequenceGenerator
}

func NewBroadcaster(hub *ws.Hub, sequence SequenceGenerator) *BroadcasterImpl {
	return &BroadcasterImpl{
		hub:      hub,
		sequence: sequence,
	}
}

func (b *BroadcasterImpl) BroadcastEvent(eventType string, payload interface{}) {
	envelope := protocol.PatchEnvelope{
		Sequence: b.sequence.Next(),
		EventID:  0,
		Type:     eventType,
		Payload:  payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		log.Printf("failed to marshal %s: %v", eventType, err)
		return
	}
	b.hub.Broadcast(data)
}

// LoggerImpl routes engine logging to the standard logger.
type LoggerImpl struct{}

func NewLogger() *LoggerImpl {
	return &LoggerImpl{}
}

func (l *LoggerImpl) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// SequenceGeneratorImpl hands out monotonically increasing patch sequence
// numbers; broadcasts from concurrent intents stay ordered per envelope.
type SequenceGeneratorImpl struct {
	counter uint64
}

func NewSequenceGenerator() *SequenceGeneratorImpl {
	return &SequenceGeneratorImpl{}
}

func (sg *SequenceGeneratorImpl) Next() uint64 {
	return atomic.AddUint64(&sg.counter, 1)
}
