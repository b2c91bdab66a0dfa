// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"dialogue-actions/pkg/sdk"
)

type entry struct {
	action sdk.Action
	info   ActionInfo
}

// Registry maps action names to implementations. It is safe for concurrent
// use; registration normally happens once at startup.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]entry
}

func New() *Registry {
	return &Registry{actions: make(map[string]entry)}
}

// Register adds an action under action.Name(). info.Name is overwritten
// with that name.
func (r *Registry) Register(action sdk.Action, info ActionInfo) error {
	name := action.Name()
	if name == "" {
		return fmt.Errorf("registry: action has an empty name")
	}
	info.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[name]; exists {
		return fmt.Errorf("registry: action %q already registered", name)
	}
	r.actions[name] = entry{action: action, info: info}
	return nil
}

func (r *Registry) Get(name string) (sdk.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.actions[name]
	return e.action, ok
}

// Infos returns action metadata sorted by name.
func (r *Registry) Infos() []ActionInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ActionInfo, 0, len(r.actions))
	for _, e := range r.actions {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Names() []string {
	infos := r.Infos()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

func (r *Registry) Catalog(version string) Catalog {
	return Catalog{Version: version, Actions: r.Infos()}
}

// WriteCatalog writes the indented JSON catalog.
func (r *Registry) WriteCatalog(w io.Writer, version string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Catalog(version))
}
