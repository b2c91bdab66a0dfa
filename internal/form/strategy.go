package form

import (
	"fmt"

	"dialogue-actions/pkg/sdk"
)

// Strategy is one way of deriving a candidate for a slot. The set is closed:
// FromEntity, FromIntent and FromText are the only implementations.
type Strategy interface {
	strategy()
}

// FromEntity takes the value of an extracted entity. Intents, when set,
// restricts the match to those intents; NotIntents excludes intents.
type FromEntity struct {
	Entity     string
	Intents    []string
	NotIntents []string
}

// FromIntent maps an exact intent to a fixed value.
type FromIntent struct {
	Intent string
	Value  Value
}

// FromText takes the raw utterance unless the intent is NotIntent.
type FromText struct {
	NotIntent string
}

func (FromEntity) strategy() {}
func (FromIntent) strategy() {}
func (FromText) strategy()   {}

// Signals is what the current turn offers for extraction.
type Signals struct {
	Intent   string
	Entities []sdk.Entity
	Text     string
}

// SignalsFromTracker reads the latest user message.
func SignalsFromTracker(t sdk.Tracker) Signals {
	return Signals{
		Intent:   t.LatestMessage.Intent.Name,
		Entities: t.LatestMessage.Entities,
		Text:     t.LatestMessage.Text,
	}
}

// Candidate is a resolved proposal. Source is the index of the strategy that
// produced it.
type Candidate struct {
	Slot   string
	Value  Value
	Source int
}

// Resolve walks the slot's strategies in declaration order and returns the
// first non-empty candidate. Later strategies are never evaluated.
func Resolve(slot Slot, signals Signals) (Candidate, bool) {
	for i, s := range slot.Strategies {
		v := extract(s, signals)
		if v.IsSet() {
			return Candidate{Slot: slot.Name, Value: v, Source: i}, true
		}
	}
	return Candidate{Slot: slot.Name}, false
}

// ResolveEntities is Resolve restricted to FromEntity strategies. It serves
// turns where no slot has been asked for yet, so the utterance is not an
// answer to any question.
func ResolveEntities(slot Slot, signals Signals) (Candidate, bool) {
	for i, s := range slot.Strategies {
		if _, ok := s.(FromEntity); !ok {
			continue
		}
		if v := extract(s, signals); v.IsSet() {
			return Candidate{Slot: slot.Name, Value: v, Source: i}, true
		}
	}
	return Candidate{Slot: slot.Name}, false
}

func extract(s Strategy, signals Signals) Value {
	switch st := s.(type) {
	case FromEntity:
		if len(st.Intents) > 0 && !contains(st.Intents, signals.Intent) {
			return Unset()
		}
		if contains(st.NotIntents, signals.Intent) {
			return Unset()
		}
		for _, e := range signals.Entities {
			if e.Entity == st.Entity {
				if v := ValueOf(e.Value); v.IsSet() {
					return v
				}
			}
		}
		return Unset()
	case FromIntent:
		if signals.Intent != "" && signals.Intent == st.Intent {
			return st.Value
		}
		return Unset()
	case FromText:
		if st.NotIntent != "" && signals.Intent == st.NotIntent {
			return Unset()
		}
		return Text(signals.Text)
	default:
		panic(fmt.Sprintf("form: unhandled strategy %T", s))
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
