// pkg/registry/schema.go
package registry

// Catalog is the JSON listing served at /actions and printed by the CLI.
type Catalog struct {
	Version string       `json:"version"`
	Actions []ActionInfo `json:"actions"`
}

// ActionInfo describes one registered action.
type ActionInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Slots       []string `json:"slots,omitempty"`
	ErrorCodes  []string `json:"errorCodes,omitempty"`
	Timeout     string   `json:"timeout,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
