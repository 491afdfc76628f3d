package events

import (
	"context"
	"sync"

	"github.com/gestrest/supplyplan/pkg/logger"
)

// MemoryPublisher keeps published events in memory, grouped by stream,
// and hands them to subscribed handlers. A bounded publisher keeps only the
// most recent events.
type MemoryPublisher struct {
	streams     map[string][]Event
	trimmed     map[string]int
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	allEvents   []Event
	retain      int
	log         *logger.Logger
}

// Verify interface compliance
var _ Publisher = (*MemoryPublisher)(nil)

// NewMemoryPublisher creates a publisher that keeps every event
func NewMemoryPublisher(log *logger.Logger) *MemoryPublisher {
	return NewBoundedMemoryPublisher(log, 0)
}

// NewBoundedMemoryPublisher creates a publisher that keeps at most retain
// events, dropping the oldest first. retain < 1 keeps everything.
func NewBoundedMemoryPublisher(log *logger.Logger, retain int) *MemoryPublisher {
	if log == nil {
		log = logger.Discard()
	}
	if retain < 0 {
		retain = 0
	}
	return &MemoryPublisher{
		streams:     make(map[string][]Event),
		trimmed:     make(map[string]int),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
		retain:      retain,
		log:         log,
	}
}

// Publish stores the event with the next version of its stream and
// notifies subscribers before returning
func (s *MemoryPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.Lock()
	streamID := event.StreamID()
	eventWithVersion := BaseEvent{
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: s.trimmed[streamID] + len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	s.evict()
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)
	s.mutex.Unlock()

	for _, handler := range handlers {
		if !handler.CanHandle(eventWithVersion.Type()) {
			continue
		}
		if err := handler.Handle(eventWithVersion); err != nil {
			s.log.Warn("event handler failed", "type", eventWithVersion.Type(), "stream", streamID, "error", err)
		}
	}
	return nil
}

// evict drops the oldest events beyond the retention limit. A stream whose
// events are all dropped is forgotten. Callers hold the write lock.
func (s *MemoryPublisher) evict() {
	if s.retain == 0 || len(s.allEvents) <= s.retain {
		return
	}

	excess := len(s.allEvents) - s.retain
	for _, old := range s.allEvents[:excess] {
		id := old.StreamID()
		if len(s.streams[id]) <= 1 {
			delete(s.streams, id)
			delete(s.trimmed, id)
			continue
		}
		s.streams[id] = append([]Event(nil), s.streams[id][1:]...)
		s.trimmed[id]++
	}
	s.allEvents = append(make([]Event, 0, s.retain), s.allEvents[excess:]...)
}

// ReadEvents returns the retained events of a stream from fromVersion on
func (s *MemoryPublisher) ReadEvents(streamID string, fromVersion int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events := s.streams[streamID]
	first := s.trimmed[streamID] + 1
	if fromVersion < first {
		fromVersion = first
	}
	offset := fromVersion - first
	if offset >= len(events) {
		return []Event{}
	}
	return append([]Event(nil), events[offset:]...)
}

// Len returns the number of retained events
func (s *MemoryPublisher) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.allEvents)
}

// ReadAllEvents returns retained events in publish order from a position in
// the retained window
func (s *MemoryPublisher) ReadAllEvents(fromPosition int) []Event {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return []Event{}
	}
	return append([]Event(nil), s.allEvents[fromPosition:]...)
}

// Subscribe registers a handler for the given event types
func (s *MemoryPublisher) Subscribe(eventTypes []string, handler EventHandler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
}

// Unsubscribe removes a handler from every event type
func (s *MemoryPublisher) Unsubscribe(handler EventHandler) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		kept := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				kept = append(kept, h)
			}
		}
		s.subscribers[eventType] = kept
	}
}

// Close is a no-op; retained events stay readable
func (s *MemoryPublisher) Close() error {
	return nil
}
