package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"dialogue-actions/pkg/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedAction string

func (a namedAction) Name() string { return string(a) }

func (a namedAction) Run(context.Context, *sdk.CollectingDispatcher, sdk.Tracker, map[string]interface{}) ([]sdk.Event, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(namedAction("restaurante_form"), ActionInfo{Category: "forms"}))
	require.NoError(t, r.Register(namedAction("action_buscar_pokemon"), ActionInfo{Name: "ignored"}))

	a, ok := r.Get("restaurante_form")
	require.True(t, ok)
	assert.Equal(t, "restaurante_form", a.Name())

	_, ok = r.Get("action_unknown")
	assert.False(t, ok)

	assert.Equal(t, []string{"action_buscar_pokemon", "restaurante_form"}, r.Names())
}

func TestRegistry_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(namedAction("a"), ActionInfo{}))

	assert.Error(t, r.Register(namedAction("a"), ActionInfo{}))
	assert.Error(t, r.Register(namedAction(""), ActionInfo{}))
}

func TestRegistry_WriteCatalog(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(namedAction("restaurante_form"), ActionInfo{
		Slots: []string{"cocina", "numero_personas"},
	}))

	var buf bytes.Buffer
	require.NoError(t, r.WriteCatalog(&buf, "1.2.0"))

	var got Catalog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "1.2.0", got.Version)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, "restaurante_form", got.Actions[0].Name)
	assert.Equal(t, []string{"cocina", "numero_personas"}, got.Actions[0].Slots)
}
