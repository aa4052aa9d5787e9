package log

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/viant/simupersona/genai/redact"
)

// EventType represents classification of an event.
type EventType string

const (
	LLMInput      EventType = "LLM_INPUT"
	LLMOutput     EventType = "LLM_OUTPUT"
	LLMError      EventType = "LLM_ERROR"
	PersonaChange EventType = "PERSONA_CHANGE"
)

type Event struct {
	Time      time.Time   `json:"ts"`
	EventType EventType   `json:"eventtype"`
	Payload   interface{} `json:"p"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType EventType, payload interface{}) Event {
	return Event{Time: time.Now(), EventType: eventType, Payload: payload}
}

// Collector collects events and fans them out to subscribers.
type Collector struct {
	mu   sync.RWMutex
	subs []chan Event
}

var Default = &Collector{}

// Publish sends an event to all subscribers (non-blocking).
func Publish(e Event) {
	Default.Publish(e)
}

func (c *Collector) Publish(e Event) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe returns a receive-only channel for events. buf is channel size.
func (c *Collector) Subscribe(buf int) <-chan Event {
	ch := make(chan Event, buf)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Sink writes every event of c to w as a JSON line with credentials
// redacted, filtering by event types if provided.
func (c *Collector) Sink(w io.Writer, filters ...EventType) {
	want := map[EventType]bool{}
	for _, f := range filters {
		want[f] = true
	}
	events := c.Subscribe(100)
	go func() {
		for ev := range events {
			if len(want) > 0 && !want[ev.EventType] {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			_, _ = w.Write(append(redact.JSON(data), '\n'))
		}
	}()
}

// FileSink writes every default collector event to w.
func FileSink(w io.Writer, filters ...EventType) {
	Default.Sink(w, filters...)
}

// ParseEventTypes converts comma separated names into event types.
func ParseEventTypes(names []string) []EventType {
	ret := make([]EventType, 0, len(names))
	for _, name := range names {
		if name != "" {
			ret = append(ret, EventType(name))
		}
	}
	return ret
}
