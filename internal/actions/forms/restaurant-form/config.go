// internal/actions/forms/restaurant-form/config.go
package restaurantform

import (
	"time"

	"dialogue-actions/internal/common/domain"
)

type Config struct {
	Cuisines           []string
	OutdoorCue         string
	IndoorCue          string
	Templates          domain.Templates
	RecordReservations bool
	Timeout            time.Duration
}

func LoadConfig() *Config {
	return ConfigFromDomain(domain.Default())
}

// ConfigFromDomain copies the form-relevant tables out of a domain file.
func ConfigFromDomain(d domain.File) *Config {
	cuisines := make([]string, len(d.Cuisines))
	copy(cuisines, d.Cuisines)
	return &Config{
		Cuisines:   cuisines,
		OutdoorCue: d.Seating.Outdoor,
		IndoorCue:  d.Seating.Indoor,
		Templates:  d.Templates,
		Timeout:    10 * time.Second,
	}
}
