package form

import (
	"testing"

	"dialogue-actions/pkg/sdk"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestForm() Form {
	return Form{
		Name: "booking_form",
		Slots: []Slot{
			{
				Name:       "cuisine",
				Strategies: []Strategy{FromEntity{Entity: "cuisine", NotIntents: []string{"chitchat"}}},
				Validator:  OneOf{Options: []string{"italiana", "china"}, RejectTemplate: "utter_wrong_cuisine"},
			},
			{
				Name:       "people",
				Strategies: []Strategy{FromEntity{Entity: "number", Intents: []string{"inform", "request"}}},
				Validator:  PositiveInteger{RejectTemplate: "utter_wrong_people"},
			},
			{
				Name: "outdoor",
				Strategies: []Strategy{
					FromEntity{Entity: "seat"},
					FromIntent{Intent: "affirm", Value: Bool(true)},
					FromIntent{Intent: "deny", Value: Bool(false)},
				},
				Validator: CueFlag{TrueCue: "fuera", FalseCue: "dentro", RejectTemplate: "utter_wrong_seat"},
			},
			{
				Name: "notes",
				Strategies: []Strategy{
					FromIntent{Intent: "deny", Value: Text("none")},
					FromText{NotIntent: "affirm"},
				},
			},
		},
		SubmitTemplate: "utter_submit",
	}
}

func activeState(requested string, values map[string]Value) State {
	if values == nil {
		values = map[string]Value{}
	}
	return State{Values: values, RequestedSlot: requested, Active: true}
}

func templates(msgs []sdk.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Template
	}
	return out
}

// ==========================
// Transition Tests
// ==========================

func TestAdvance_Activation(t *testing.T) {
	f := createTestForm()

	out := f.Advance(State{}, signals("request", "book a table"))

	assert.Equal(t, StatusCollecting, out.Status)
	assert.Equal(t, 0, out.Index)
	assert.Nil(t, out.Candidate)
	want := []sdk.Event{
		sdk.ActiveLoopSet("booking_form"),
		sdk.SlotSet(RequestedSlot, "cuisine"),
	}
	if diff := cmp.Diff(want, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"utter_ask_cuisine"}, templates(out.Messages))
}

func TestAdvance_AcceptAdvances(t *testing.T) {
	f := createTestForm()

	out := f.Advance(activeState("cuisine", nil), signals("inform", "italian", entity("cuisine", "Italiana")))

	assert.Equal(t, StatusCollecting, out.Status)
	assert.Equal(t, 1, out.Index)
	assert.False(t, out.Rejected)
	want := []sdk.Event{
		sdk.SlotSet("cuisine", "Italiana"),
		sdk.SlotSet(RequestedSlot, "people"),
	}
	if diff := cmp.Diff(want, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"utter_ask_people"}, templates(out.Messages))
}

func TestAdvance_RejectionDoesNotAdvance(t *testing.T) {
	f := createTestForm()
	before := activeState("people", map[string]Value{"cuisine": Text("china")})

	out := f.Advance(before, signals("inform", "zero", entity("number", "0")))

	assert.Equal(t, StatusCollecting, out.Status)
	assert.Equal(t, 1, out.Index, "index must stay on the rejected slot")
	assert.True(t, out.Rejected)
	assert.False(t, out.Values["people"].IsSet())
	want := []sdk.Event{sdk.SlotSet("people", nil)}
	if diff := cmp.Diff(want, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"utter_wrong_people", "utter_ask_people"}, templates(out.Messages))
	assert.False(t, before.Values["people"].IsSet(), "input state must not be mutated")
}

func TestAdvance_NoCandidateReprompts(t *testing.T) {
	f := createTestForm()

	out := f.Advance(activeState("people", map[string]Value{"cuisine": Text("china")}), signals("chitchat", "how are you"))

	assert.Equal(t, 1, out.Index)
	assert.Empty(t, out.Events)
	assert.Equal(t, []string{"utter_ask_people"}, templates(out.Messages))
}

func TestAdvance_ScopedToCurrentSlot(t *testing.T) {
	f := createTestForm()

	// The utterance carries a number while cuisine is still outstanding.
	out := f.Advance(activeState("cuisine", nil), signals("inform", "for 4", entity("number", "4")))

	assert.Equal(t, 0, out.Index)
	assert.False(t, out.Values["people"].IsSet(), "later slots are not filled opportunistically")
	for _, e := range out.Events {
		assert.NotEqual(t, "people", e.Name)
	}
}

func TestAdvance_BooleanFromIntent(t *testing.T) {
	f := createTestForm()
	state := activeState("outdoor", map[string]Value{
		"cuisine": Text("china"),
		"people":  Text("2"),
	})

	out := f.Advance(state, signals("deny", "no"))

	require.Equal(t, 3, out.Index)
	flag, ok := out.Values["outdoor"].AsBool()
	assert.True(t, ok)
	assert.False(t, flag)
	assert.Equal(t, sdk.SlotSet("outdoor", false), out.Events[0])
}

func TestAdvance_FullConversation(t *testing.T) {
	f := createTestForm()
	turns := []Signals{
		signals("request", "table please"),
		signals("inform", "italian", entity("cuisine", "italiana")),
		signals("inform", "four of us", entity("number", float64(4))),
		signals("inform", "fuera", entity("seat", "fuera")),
		signals("inform", "window seat"),
	}

	state := State{Values: map[string]Value{}}
	var last Outcome
	submissions := 0
	for i, turn := range turns {
		last = f.Advance(state, turn)
		for _, m := range last.Messages {
			if m.Template == "utter_submit" {
				submissions++
			}
		}
		if i < len(turns)-1 {
			require.Equal(t, StatusCollecting, last.Status, "turn %d", i)
		}
		state = State{Values: last.Values, RequestedSlot: requestedAfter(state.RequestedSlot, last.Events), Active: true}
	}

	assert.Equal(t, StatusComplete, last.Status)
	assert.Equal(t, len(f.Slots), last.Index)
	assert.Equal(t, 1, submissions)
	assert.Equal(t, []string{"utter_submit"}, templates(last.Messages))

	// After the final slot is set only loop bookkeeping follows.
	want := []sdk.Event{
		sdk.SlotSet("notes", "window seat"),
		sdk.SlotSet(RequestedSlot, nil),
		sdk.ActiveLoopSet(""),
	}
	if diff := cmp.Diff(want, last.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvance_PrefilledFormCompletesImmediately(t *testing.T) {
	f := createTestForm()
	state := State{Values: map[string]Value{
		"cuisine": Text("china"),
		"people":  Text("3"),
		"outdoor": Bool(true),
		"notes":   Text("none"),
	}}

	out := f.Advance(state, signals("request", "book"))

	assert.Equal(t, StatusComplete, out.Status)
	assert.Equal(t, []string{"utter_submit"}, templates(out.Messages))
	assert.Equal(t, sdk.ActiveLoopSet("booking_form"), out.Events[0])
}

func TestAdvance_ReactivationDoesNotConsumeUtterance(t *testing.T) {
	f := createTestForm()
	state := State{Values: map[string]Value{
		"cuisine": Text("china"),
		"people":  Text("3"),
		"outdoor": Bool(true),
	}}

	out := f.Advance(state, signals("request", "book a table again"))

	assert.Equal(t, StatusCollecting, out.Status)
	assert.Equal(t, 3, out.Index)
	assert.Nil(t, out.Candidate)
	assert.False(t, out.Values["notes"].IsSet(), "activation text is not an answer")
	want := []sdk.Event{
		sdk.ActiveLoopSet("booking_form"),
		sdk.SlotSet(RequestedSlot, "notes"),
	}
	if diff := cmp.Diff(want, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"utter_ask_notes"}, templates(out.Messages))
}

func TestAdvance_ActivationIgnoresIntentMapping(t *testing.T) {
	f := createTestForm()
	state := State{Values: map[string]Value{
		"cuisine": Text("china"),
		"people":  Text("3"),
	}}

	out := f.Advance(state, signals("deny", "no, book something else"))

	assert.Equal(t, 2, out.Index)
	assert.False(t, out.Values["outdoor"].IsSet())
	assert.Equal(t, []string{"utter_ask_outdoor"}, templates(out.Messages))
}

func TestAdvance_ActivationTakesEntity(t *testing.T) {
	f := createTestForm()

	out := f.Advance(State{}, signals("request", "chinese please", entity("cuisine", "china")))

	assert.Equal(t, StatusCollecting, out.Status)
	assert.Equal(t, 1, out.Index)
	assert.Equal(t, "china", out.Values["cuisine"].String())
	want := []sdk.Event{
		sdk.ActiveLoopSet("booking_form"),
		sdk.SlotSet("cuisine", "china"),
		sdk.SlotSet(RequestedSlot, "people"),
	}
	if diff := cmp.Diff(want, out.Events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestStateFromTracker(t *testing.T) {
	f := createTestForm()
	tracker := sdk.Tracker{
		Slots: map[string]interface{}{
			"cuisine":     "china",
			"people":      float64(2),
			"outdoor":     nil,
			RequestedSlot: "outdoor",
			"unrelated":   "x",
		},
		ActiveLoop: sdk.ActiveLoop{Name: "booking_form"},
	}

	state := StateFromTracker(f, tracker)

	assert.True(t, state.Active)
	assert.Equal(t, "outdoor", state.RequestedSlot)
	assert.Equal(t, "china", state.Values["cuisine"].String())
	assert.Equal(t, "2", state.Values["people"].String())
	_, hasOutdoor := state.Values["outdoor"]
	assert.False(t, hasOutdoor)
	_, hasUnrelated := state.Values["unrelated"]
	assert.False(t, hasUnrelated)
}

func requestedAfter(current string, events []sdk.Event) string {
	for _, e := range events {
		if e.Type == sdk.EventSlot && e.Name == RequestedSlot {
			if s, ok := e.Value.(string); ok {
				current = s
			} else {
				current = ""
			}
		}
	}
	return current
}
