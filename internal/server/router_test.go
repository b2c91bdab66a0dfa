package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dialogue-actions/internal/actions"
	"dialogue-actions/internal/common/config"
	"dialogue-actions/internal/common/domain"
	"dialogue-actions/internal/common/logger"
	"dialogue-actions/internal/common/validation"
	"dialogue-actions/pkg/registry"
	"dialogue-actions/pkg/sdk"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newLookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pokemon/pikachu":
			fmt.Fprint(w, `{"id": 25, "name": "pikachu", "types": [{"slot": 1, "type": {"name": "electric"}}], "sprites": {"front_default": "https://img.example/25.png"}}`)
		case "/pokemon/down":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func createTestRouter(t *testing.T, lookupURL string, checks map[string]ReadinessCheck) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewTestLogger(t)

	cfg := &config.Config{}
	cfg.Lookup.BaseURL = lookupURL
	cfg.Lookup.Resource = "pokemon"
	cfg.Lookup.Timeout = 2000

	reg := registry.New()
	require.NoError(t, actions.Register(reg, cfg, domain.Default(), actions.Dependencies{}, log))

	validator, err := validation.NewRequestValidator()
	require.NoError(t, err)

	return SetupRouter(Options{
		WebhookPath: "/webhook",
		Version:     "test",
		Executor:    actions.NewExecutor(reg, cfg, nil, log),
		Validator:   validator,
		Checks:      checks,
		Logger:      log,
	})
}

func postWebhook(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) sdk.Response {
	t.Helper()
	var resp sdk.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// ==========================
// Webhook Tests
// ==========================

func TestWebhook_SpeciesLookup(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	w := postWebhook(r, `{
		"next_action": "action_buscar_pokemon",
		"sender_id": "u1",
		"tracker": {"sender_id": "u1", "slots": {"nombre_pokemon": "Pikachu", "numero_pokemon": null}}
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "utter_info_pokemon", resp.Responses[0].Template)
	assert.Equal(t, "Pikachu", resp.Responses[0].Parameters["nombre"])
	assert.Equal(t, "eléctrico", resp.Responses[0].Parameters["tipos"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestWebhook_SpeciesNotFound(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	w := postWebhook(r, `{"next_action": "action_buscar_pokemon", "tracker": {"slots": {"nombre_pokemon": "missingno"}}}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "utter_pokemon_no_encontrado", resp.Responses[0].Template)
}

func TestWebhook_RestaurantFormActivation(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	w := postWebhook(r, `{
		"next_action": "restaurante_form",
		"tracker": {
			"sender_id": "u2",
			"slots": {},
			"latest_message": {"text": "quiero reservar", "intent": {"name": "solicitar_restaurante"}, "entities": []}
		}
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.NotEmpty(t, resp.Events)
	require.Len(t, resp.Responses, 1)
	assert.Equal(t, "utter_ask_cocina", resp.Responses[0].Template)
}

func TestWebhook_Errors(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"next_action":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "missing tracker",
			body:       `{"next_action": "action_buscar_pokemon"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "unknown action",
			body:       `{"next_action": "action_unknown", "tracker": {}}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "ACTION_NOT_FOUND",
		},
		{
			name:       "no identifier",
			body:       `{"next_action": "action_buscar_pokemon", "tracker": {"slots": {}}}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "LOOKUP_IDENTIFIER_MISSING",
		},
		{
			name:       "remote failure",
			body:       `{"next_action": "action_buscar_pokemon", "tracker": {"slots": {"nombre_pokemon": "down"}}}`,
			wantStatus: http.StatusBadGateway,
			wantCode:   "LOOKUP_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postWebhook(r, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			body := decodeError(t, w)
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestWebhook_PropagatesRequestID(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(`{"next_action": "action_unknown", "tracker": {}}`))
	req.Header.Set(requestIDHeader, "fixed-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", w.Header().Get(requestIDHeader))
}

// ==========================
// Operational Endpoint Tests
// ==========================

func TestActionsCatalog(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/actions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var catalog registry.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Equal(t, "test", catalog.Version)
	names := make([]string, 0, len(catalog.Actions))
	for _, a := range catalog.Actions {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"action_buscar_pokemon", "restaurante_form"}, names)
}

func TestHealthAndMetrics(t *testing.T) {
	r := createTestRouter(t, newLookupServer(t).URL, nil)

	for _, path := range []string{"/health", "/metrics"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all checks pass", func(t *testing.T) {
		r := createTestRouter(t, "http://unused", map[string]ReadinessCheck{"redis": ok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("failing check", func(t *testing.T) {
		r := createTestRouter(t, "http://unused", map[string]ReadinessCheck{"redis": ok, "postgres": down})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeError(t, w)
		failed, _ := body["failed"].(map[string]interface{})
		assert.Equal(t, "connection refused", failed["postgres"])
		assert.NotContains(t, failed, "redis")
	})
}
