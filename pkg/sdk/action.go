// pkg/sdk/action.go
package sdk

import "context"

// Action is a named unit the dialogue manager can invoke for one turn.
// Replies go through the dispatcher; state changes are the returned events.
type Action interface {
	Name() string
	Run(ctx context.Context, dispatcher *CollectingDispatcher, tracker Tracker, domain map[string]interface{}) ([]Event, error)
}

// CollectingDispatcher buffers message directives in emission order.
type CollectingDispatcher struct {
	messages []Message
}

func NewCollectingDispatcher() *CollectingDispatcher {
	return &CollectingDispatcher{}
}

// Utter queues a template with its parameters. A nil map is kept nil so the
// serialized directive carries no parameters field.
func (d *CollectingDispatcher) Utter(template string, params map[string]string) {
	d.messages = append(d.messages, Message{Template: template, Parameters: params})
}

func (d *CollectingDispatcher) Messages() []Message {
	out := make([]Message, len(d.messages))
	copy(out, d.messages)
	return out
}

// Run executes one action against a request and assembles the response.
func Run(ctx context.Context, action Action, req *Request) (*Response, error) {
	dispatcher := NewCollectingDispatcher()
	events, err := action.Run(ctx, dispatcher, req.Tracker, req.Domain)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []Event{}
	}
	return &Response{
		Events:    events,
		Responses: dispatcher.Messages(),
	}, nil
}
