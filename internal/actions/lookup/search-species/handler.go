// internal/actions/lookup/search-species/handler.go
package searchspecies

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/metrics"
	"dialogue-actions/pkg/sdk"
)

const (
	ActionName = "action_buscar_pokemon"
)

var (
	ErrIdentifierMissing = errors.New("LOOKUP_IDENTIFIER_MISSING")
	ErrLookupFailed      = errors.New("LOOKUP_FAILED")
	ErrMalformedResponse = errors.New("LOOKUP_MALFORMED_RESPONSE")

	// ErrSpeciesNotFound is answered to the user and never leaves the action.
	ErrSpeciesNotFound = errors.New("SPECIES_NOT_FOUND")
)

// Fetcher is satisfied by *Client.
type Fetcher interface {
	Fetch(ctx context.Context, key string) (*Payload, error)
}

type Handler struct {
	config  *Config
	fetcher Fetcher
	shaper  *Shaper
	logger  logger.Logger
}

func NewHandler(config *Config, fetcher Fetcher, shaper *Shaper, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		fetcher: fetcher,
		shaper:  shaper,
		logger:  log.WithFields(map[string]interface{}{"action": ActionName}),
	}
}

func (h *Handler) Name() string { return ActionName }

// Run looks up the species named by the name or number slot and replies
// with one message. Every handled outcome resets all slots.
func (h *Handler) Run(ctx context.Context, dispatcher *sdk.CollectingDispatcher, tracker sdk.Tracker, _ map[string]interface{}) ([]sdk.Event, error) {
	key, err := h.lookupKey(tracker)
	if errors.Is(err, ErrSpeciesNotFound) {
		return h.notFound(dispatcher, tracker.SenderID, err), nil
	}
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"senderId": tracker.SenderID, "key": key}

	payload, err := h.fetcher.Fetch(ctx, key)
	if errors.Is(err, ErrSpeciesNotFound) {
		return h.notFound(dispatcher, tracker.SenderID, err), nil
	}
	if err != nil {
		return nil, err
	}

	record, untranslated := h.shaper.Record(payload)
	for _, category := range untranslated {
		metrics.LookupUntranslatedCategories.WithLabelValues(category).Inc()
		h.logger.Warn("category has no translation, omitted from reply", map[string]interface{}{
			"key":      key,
			"category": category,
		})
	}

	msg := h.shaper.Message(record)
	dispatcher.Utter(msg.Template, msg.Parameters)

	fields["template"] = msg.Template
	h.logger.Info("species found", fields)
	return []sdk.Event{sdk.AllSlotsReset()}, nil
}

func (h *Handler) notFound(dispatcher *sdk.CollectingDispatcher, senderID string, err error) []sdk.Event {
	h.logger.Info("species not found", map[string]interface{}{
		"senderId": senderID,
		"reason":   err.Error(),
	})
	dispatcher.Utter(h.config.Templates.NotFound, nil)
	return []sdk.Event{sdk.AllSlotsReset()}
}

// lookupKey prefers the name when both slots are filled.
func (h *Handler) lookupKey(tracker sdk.Tracker) (string, error) {
	name := strings.TrimSpace(tracker.SlotText(SlotName))
	number := strings.TrimSpace(tracker.SlotText(SlotNumber))

	switch {
	case name != "":
		if number != "" {
			h.logger.Warn("both name and number supplied, using name", map[string]interface{}{
				"senderId": tracker.SenderID,
				"name":     name,
				"number":   number,
			})
		}
		return strings.ToLower(name), nil
	case number != "":
		n, err := strconv.Atoi(number)
		if err != nil || n < 1 {
			// No species carries such a number.
			return "", fmt.Errorf("%w: %q is not a positive integer", ErrSpeciesNotFound, number)
		}
		return strconv.Itoa(n), nil
	default:
		return "", fmt.Errorf("%w: neither %s nor %s is set", ErrIdentifierMissing, SlotName, SlotNumber)
	}
}
