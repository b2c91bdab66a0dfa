// internal/actions/forms/restaurant-form/handler.go
package restaurantform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/metrics"
	"dialogue-actions/internal/form"
	"dialogue-actions/pkg/sdk"

	"github.com/google/uuid"
)

const (
	ActionName = "restaurante_form"
)

var (
	ErrReservationRecordFailed = errors.New("RESERVATION_RECORD_FAILED")
)

type Handler struct {
	config   *Config
	form     form.Form
	recorder Recorder
	logger   logger.Logger
	now      func() time.Time
}

// NewHandler builds the form action. recorder may be nil, in which case
// completed forms are only confirmed to the user.
func NewHandler(config *Config, recorder Recorder, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		form:     BuildForm(config),
		recorder: recorder,
		logger:   log.WithFields(map[string]interface{}{"action": ActionName}),
		now:      time.Now,
	}
}

func (h *Handler) Name() string { return ActionName }

// Form exposes the slot definitions, e.g. for listing.
func (h *Handler) Form() form.Form { return h.form }

// Run advances the form by one turn.
func (h *Handler) Run(ctx context.Context, dispatcher *sdk.CollectingDispatcher, tracker sdk.Tracker, _ map[string]interface{}) ([]sdk.Event, error) {
	state := form.StateFromTracker(h.form, tracker)
	out := h.form.Advance(state, form.SignalsFromTracker(tracker))

	fields := map[string]interface{}{
		"senderId": tracker.SenderID,
		"slot":     out.Slot,
		"status":   out.Status.String(),
	}

	if out.Rejected {
		metrics.FormRejections.WithLabelValues(ActionName, out.Slot).Inc()
		h.logger.Info("slot candidate rejected", fields)
	}

	if out.Status == form.StatusComplete {
		if err := h.submit(ctx, tracker.SenderID, out.Values); err != nil {
			return nil, err
		}
		metrics.FormSubmissions.WithLabelValues(ActionName).Inc()
		h.logger.Info("form completed", fields)
	} else {
		h.logger.Debug("form collecting", fields)
	}

	for _, m := range out.Messages {
		dispatcher.Utter(m.Template, m.Parameters)
	}
	return out.Events, nil
}

func (h *Handler) submit(ctx context.Context, senderID string, values map[string]form.Value) error {
	if h.recorder == nil || !h.config.RecordReservations {
		return nil
	}

	res := h.reservation(senderID, values)

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	if err := h.recorder.Record(ctx, res); err != nil {
		h.logger.Error("reservation not recorded", map[string]interface{}{
			"senderId":      senderID,
			"reservationId": res.ID,
			"error":         err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrReservationRecordFailed, err)
	}

	h.logger.Info("reservation recorded", map[string]interface{}{
		"senderId":      senderID,
		"reservationId": res.ID,
	})
	return nil
}

func (h *Handler) reservation(senderID string, values map[string]form.Value) Reservation {
	partySize, _ := strconv.Atoi(strings.TrimSpace(values[SlotPartySize].String()))
	outdoor, _ := values[SlotOutdoorSeating].AsBool()
	return Reservation{
		ID:             uuid.New().String(),
		SenderID:       senderID,
		Cuisine:        values[SlotCuisine].String(),
		PartySize:      partySize,
		OutdoorSeating: outdoor,
		Preferences:    values[SlotPreferences].String(),
		Comments:       values[SlotComments].String(),
		CreatedAt:      h.now().UTC(),
	}
}
