// Package form drives a slot-filling form one turn at a time.
//
// A Form is an ordered list of slots, each with extraction strategies and an
// optional validator. Advance is a pure function of the slot state and the
// turn's signals: it never mutates its input and reports every change as
// dialogue-manager events plus message directives.
package form

import (
	"dialogue-actions/pkg/sdk"
)

// RequestedSlot is the bookkeeping slot naming the slot currently asked for.
const RequestedSlot = "requested_slot"

// Slot is one required datum and how to obtain it.
type Slot struct {
	Name       string
	Strategies []Strategy
	Validator  Validator
}

// Form is the fixed, ordered set of required slots.
type Form struct {
	Name           string
	Slots          []Slot
	SubmitTemplate string
}

// AskTemplate is the prompt used to request a slot.
func (f Form) AskTemplate(slot string) string {
	return "utter_ask_" + slot
}

// SlotNames returns the required slots in prompt order.
func (f Form) SlotNames() []string {
	names := make([]string, len(f.Slots))
	for i, s := range f.Slots {
		names[i] = s.Name
	}
	return names
}

// State is the per-conversation input for one turn.
type State struct {
	Values        map[string]Value
	RequestedSlot string
	Active        bool
}

// StateFromTracker reads the form's slots and loop status from the tracker.
func StateFromTracker(f Form, t sdk.Tracker) State {
	values := make(map[string]Value, len(f.Slots))
	for _, s := range f.Slots {
		if v := ValueOf(t.GetSlot(s.Name)); v.IsSet() {
			values[s.Name] = v
		}
	}
	return State{
		Values:        values,
		RequestedSlot: t.SlotText(RequestedSlot),
		Active:        t.ActiveLoop.Name == f.Name,
	}
}

type Status int

const (
	StatusCollecting Status = iota
	StatusComplete
)

func (s Status) String() string {
	if s == StatusComplete {
		return "complete"
	}
	return "collecting"
}

// Outcome is the result of one turn.
type Outcome struct {
	Status Status
	// Index is the slot index after the turn; len(Slots) once complete.
	Index int
	// Slot is the slot the turn worked on.
	Slot      string
	Candidate *Candidate
	Rejected  bool
	Values    map[string]Value
	Events    []sdk.Event
	Messages  []sdk.Message
}

// Advance runs one turn. Only the first unset slot is considered: a later
// slot's entity in the same utterance is ignored until its turn comes. Until
// a slot has been requested only entity strategies apply.
func (f Form) Advance(state State, signals Signals) Outcome {
	out := Outcome{Values: copyValues(state.Values)}
	if !state.Active {
		out.Events = append(out.Events, sdk.ActiveLoopSet(f.Name))
	}

	idx := f.nextUnset(out.Values)
	if idx == len(f.Slots) {
		return f.complete(out)
	}

	slot := f.Slots[idx]
	out.Index = idx
	out.Slot = slot.Name

	resolve := Resolve
	if !state.Active || state.RequestedSlot == "" {
		resolve = ResolveEntities
	}
	candidate, ok := resolve(slot, signals)
	if !ok {
		return f.ask(out, state, idx)
	}
	out.Candidate = &candidate

	result := Validate(slot.Validator, candidate.Value)
	if result.Rejected {
		out.Rejected = true
		out.Events = append(out.Events, sdk.SlotSet(slot.Name, nil))
		if result.RejectTemplate != "" {
			out.Messages = append(out.Messages, sdk.Message{Template: result.RejectTemplate})
		}
		return f.ask(out, state, idx)
	}

	out.Values[slot.Name] = result.Value
	out.Events = append(out.Events, sdk.SlotSet(slot.Name, result.Value.Interface()))

	next := f.nextUnset(out.Values)
	if next == len(f.Slots) {
		return f.complete(out)
	}
	return f.ask(out, state, next)
}

func (f Form) ask(out Outcome, state State, idx int) Outcome {
	name := f.Slots[idx].Name
	out.Status = StatusCollecting
	out.Index = idx
	if state.RequestedSlot != name {
		out.Events = append(out.Events, sdk.SlotSet(RequestedSlot, name))
	}
	out.Messages = append(out.Messages, sdk.Message{Template: f.AskTemplate(name)})
	return out
}

func (f Form) complete(out Outcome) Outcome {
	out.Status = StatusComplete
	out.Index = len(f.Slots)
	out.Events = append(out.Events,
		sdk.SlotSet(RequestedSlot, nil),
		sdk.ActiveLoopSet(""),
	)
	out.Messages = append(out.Messages, sdk.Message{Template: f.SubmitTemplate})
	return out
}

func (f Form) nextUnset(values map[string]Value) int {
	for i, s := range f.Slots {
		if !values[s.Name].IsSet() {
			return i
		}
	}
	return len(f.Slots)
}

func copyValues(in map[string]Value) map[string]Value {
	out := make(map[string]Value, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
