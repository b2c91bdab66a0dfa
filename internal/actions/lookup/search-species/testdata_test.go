package searchspecies

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	commonhttp "dialogue-actions/internal/common/http"
	"dialogue-actions/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

const (
	pikachuJSON = `{
		"id": 25,
		"name": "pikachu",
		"types": [{"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}],
		"sprites": {"front_default": "https://img.example/25.png"}
	}`
	charizardNoImageJSON = `{
		"id": 6,
		"name": "charizard",
		"types": [
			{"slot": 1, "type": {"name": "fire"}},
			{"slot": 2, "type": {"name": "flying"}}
		],
		"sprites": {"front_default": null}
	}`
	unknownCategoryJSON = `{
		"id": 1000,
		"name": "mr-mime",
		"types": [
			{"slot": 1, "type": {"name": "psychic"}},
			{"slot": 2, "type": {"name": "stellar"}},
			{"slot": 3, "type": {"name": "fairy"}}
		],
		"sprites": {"front_default": null}
	}`
)

// speciesServer serves fixed documents by path and counts requests.
type speciesServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newSpeciesServer(t *testing.T) *speciesServer {
	t.Helper()
	s := &speciesServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/pokemon/pikachu", "/pokemon/25":
			fmt.Fprint(w, pikachuJSON)
		case "/pokemon/charizard":
			fmt.Fprint(w, charizardNoImageJSON)
		case "/pokemon/mr-mime":
			fmt.Fprint(w, unknownCategoryJSON)
		case "/pokemon/broken":
			fmt.Fprint(w, `{"id": 7, "name": `)
		case "/pokemon/anonymous":
			fmt.Fprint(w, `{"id": 8, "types": []}`)
		case "/pokemon/nameless-id":
			fmt.Fprint(w, `{"name": "ghost", "types": []}`)
		case "/pokemon/overloaded":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, "Not Found")
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func createTestConfig(baseURL string) *Config {
	cfg := LoadConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return cfg
}

func createTestClient(t *testing.T, cfg *Config, cache Cache) *Client {
	return NewClient(cfg, commonhttp.NewClient(cfg.Timeout, "dialogue-actions-test"), cache, logger.NewTestLogger(t))
}

func createTestHandler(t *testing.T, baseURL string) *Handler {
	cfg := createTestConfig(baseURL)
	shaper := NewShaper(defaultLocalization(), cfg.Templates)
	return NewHandler(cfg, createTestClient(t, cfg, nil), shaper, logger.NewTestLogger(t))
}
