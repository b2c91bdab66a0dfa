// internal/actions/lookup/search-species/config.go
package searchspecies

import (
	"time"

	"dialogue-actions/internal/common/domain"
)

type Config struct {
	BaseURL   string
	Resource  string
	Timeout   time.Duration
	CacheTTL  time.Duration
	UserAgent string
	Templates domain.Templates
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:   "https://pokeapi.co/api/v2",
		Resource:  "pokemon",
		Timeout:   10 * time.Second,
		Templates: domain.Default().Templates,
	}
}
