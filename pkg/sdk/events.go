// pkg/sdk/events.go
package sdk

import "encoding/json"

// EventType identifies a state mutation returned to the dialogue manager.
type EventType string

const (
	EventSlot       EventType = "slot"
	EventResetSlots EventType = "reset_slots"
	EventActiveLoop EventType = "active_loop"
)

// Event is one state mutation. Name and Value are meaningful for slot events,
// Name alone for active_loop events (empty name deactivates the loop).
type Event struct {
	Type  EventType
	Name  string
	Value interface{}
}

func SlotSet(name string, value interface{}) Event {
	return Event{Type: EventSlot, Name: name, Value: value}
}

func AllSlotsReset() Event {
	return Event{Type: EventResetSlots}
}

func ActiveLoopSet(name string) Event {
	return Event{Type: EventActiveLoop, Name: name}
}

func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventSlot:
		return json.Marshal(map[string]interface{}{
			"event": e.Type,
			"name":  e.Name,
			"value": e.Value,
		})
	case EventActiveLoop:
		var name interface{}
		if e.Name != "" {
			name = e.Name
		}
		return json.Marshal(map[string]interface{}{
			"event": e.Type,
			"name":  name,
		})
	default:
		return json.Marshal(map[string]interface{}{
			"event": e.Type,
		})
	}
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Event EventType   `json:"event"`
		Name  *string     `json:"name"`
		Value interface{} `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Event
	e.Name = ""
	if raw.Name != nil {
		e.Name = *raw.Name
	}
	e.Value = raw.Value
	return nil
}

// Message is an outbound message directive. Rendering the template is the
// dialogue manager's job.
type Message struct {
	Template   string            `json:"template"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Response is what an action run returns to the dialogue manager.
type Response struct {
	Events    []Event   `json:"events"`
	Responses []Message `json:"responses"`
}
