// pkg/sdk/tracker.go
package sdk

import (
	"strconv"
)

// Request is the body the dialogue manager posts for every action call.
type Request struct {
	NextAction string                 `json:"next_action"`
	SenderID   string                 `json:"sender_id"`
	Tracker    Tracker                `json:"tracker"`
	Domain     map[string]interface{} `json:"domain,omitempty"`
	Version    string                 `json:"version,omitempty"`
}

// Tracker is the conversation state the dialogue manager threads into each turn.
type Tracker struct {
	SenderID      string                 `json:"sender_id"`
	Slots         map[string]interface{} `json:"slots"`
	LatestMessage LatestMessage          `json:"latest_message"`
	ActiveLoop    ActiveLoop             `json:"active_loop"`
}

type LatestMessage struct {
	Text     string   `json:"text"`
	Intent   Intent   `json:"intent"`
	Entities []Entity `json:"entities"`
}

type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Entity is one NLU extraction. Value is whatever the extractor produced
// (string for most extractors, number for numeric ones).
type Entity struct {
	Entity    string      `json:"entity"`
	Value     interface{} `json:"value"`
	Start     int         `json:"start,omitempty"`
	End       int         `json:"end,omitempty"`
	Extractor string      `json:"extractor,omitempty"`
}

type ActiveLoop struct {
	Name string `json:"name,omitempty"`
}

// GetSlot returns the raw slot value, nil when the slot is unset.
func (t Tracker) GetSlot(name string) interface{} {
	if t.Slots == nil {
		return nil
	}
	return t.Slots[name]
}

// SlotText returns the slot rendered as text, "" when unset.
func (t Tracker) SlotText(name string) string {
	switch v := t.GetSlot(name).(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// LatestIntent is a shortcut for the current turn's intent name.
func (t Tracker) LatestIntent() string {
	return t.LatestMessage.Intent.Name
}
