package actions

import (
	"database/sql"
	"fmt"

	restaurantform "dialogue-actions/internal/actions/forms/restaurant-form"
	searchspecies "dialogue-actions/internal/actions/lookup/search-species"
	"dialogue-actions/internal/common/config"
	"dialogue-actions/internal/common/domain"
	commonhttp "dialogue-actions/internal/common/http"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/pkg/registry"

	"github.com/redis/go-redis/v9"
)

// Dependencies are the shared clients handed to actions. Redis and DB may be
// nil; the lookup then runs uncached and reservations are not recorded.
type Dependencies struct {
	HTTP  commonhttp.Doer
	Redis redis.Cmdable
	DB    *sql.DB
}

// Register builds every enabled action and adds it to reg.
func Register(reg *registry.Registry, cfg *config.Config, dom domain.File, deps Dependencies, log logger.Logger) error {
	if config.IsActionEnabled(cfg, searchspecies.ActionName) {
		scfg := &searchspecies.Config{
			BaseURL:   cfg.Lookup.BaseURL,
			Resource:  cfg.Lookup.Resource,
			Timeout:   config.GetDuration(cfg.Lookup.Timeout),
			CacheTTL:  config.GetDuration(cfg.Lookup.CacheTTL),
			UserAgent: cfg.Lookup.UserAgent,
			Templates: dom.Templates,
		}
		doer := deps.HTTP
		if doer == nil {
			doer = commonhttp.NewClient(scfg.Timeout, scfg.UserAgent)
		}
		var cache searchspecies.Cache
		if deps.Redis != nil {
			cache = searchspecies.NewRedisCache(deps.Redis)
		}
		client := searchspecies.NewClient(scfg, doer, cache, log)
		shaper := searchspecies.NewShaper(searchspecies.NewLocalization(dom.Localization), dom.Templates)
		handler := searchspecies.NewHandler(scfg, client, shaper, log)

		if err := reg.Register(handler, registry.ActionInfo{
			DisplayName: "Search species",
			Description: "Looks up a species by name or number and replies with its details",
			Category:    "lookup",
			Slots:       []string{searchspecies.SlotName, searchspecies.SlotNumber},
			ErrorCodes:  []string{"LOOKUP_IDENTIFIER_MISSING", "LOOKUP_FAILED", "LOOKUP_MALFORMED_RESPONSE"},
			Timeout:     config.GetDuration(config.GetActionConfig(cfg, searchspecies.ActionName).Timeout).String(),
		}); err != nil {
			return fmt.Errorf("register %s: %w", searchspecies.ActionName, err)
		}
	}

	if config.IsActionEnabled(cfg, restaurantform.ActionName) {
		rcfg := restaurantform.ConfigFromDomain(dom)
		rcfg.RecordReservations = cfg.Forms.Restaurant.RecordReservations
		var recorder restaurantform.Recorder
		if deps.DB != nil && rcfg.RecordReservations {
			recorder = restaurantform.NewPostgresRecorder(deps.DB)
		}
		handler := restaurantform.NewHandler(rcfg, recorder, log)

		if err := reg.Register(handler, registry.ActionInfo{
			DisplayName: "Restaurant booking form",
			Description: "Collects cuisine, party size, seating, preferences and comments",
			Category:    "forms",
			Slots:       handler.Form().SlotNames(),
			ErrorCodes:  []string{"RESERVATION_RECORD_FAILED"},
			Timeout:     config.GetDuration(config.GetActionConfig(cfg, restaurantform.ActionName).Timeout).String(),
		}); err != nil {
			return fmt.Errorf("register %s: %w", restaurantform.ActionName, err)
		}
	}

	return nil
}
