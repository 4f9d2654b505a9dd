package service

import (
	"sync"

	"github.com/rocketscienceinc/ludo-backend/internal/ludo"
)

// eventLog buffers the most recent engine events of one match for the
// transport to poll. It is a plain observer on the engine's bus, not
// persistence: a restart loses it.
type eventLog struct {
	mu     sync.Mutex
	limit  int
	events []ludo.Event
}

func newEventLog(limit int) *eventLog {
	return &eventLog{limit: limit}
}

func (that *eventLog) record(event ludo.Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.events = append(that.events, event)
	if len(that.events) > that.limit {
		that.events = that.events[len(that.events)-that.limit:]
	}
}

func (that *eventLog) recent() []ludo.Event {
	that.mu.Lock()
	defer that.mu.Unlock()

	events := make([]ludo.Event, len(that.events))
	copy(events, that.events)

	return events
}

func (that *eventLog) reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.events = nil
}
