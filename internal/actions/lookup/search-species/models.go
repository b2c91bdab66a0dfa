// internal/actions/lookup/search-species/models.go
package searchspecies

// Slots read by the action.
const (
	SlotName   = "nombre_pokemon"
	SlotNumber = "numero_pokemon"
)

// Reply template parameters.
const (
	ParamNumber     = "numero"
	ParamName       = "nombre"
	ParamCategories = "tipos"
	ParamImage      = "imagen"
)

// Payload is the subset of the remote species document the action reads.
type Payload struct {
	ID      *int       `json:"id"`
	Name    string     `json:"name"`
	Types   []TypeSlot `json:"types"`
	Sprites Sprites    `json:"sprites"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// Record is a shaped lookup result.
type Record struct {
	ID         string
	Name       string
	Categories []string
	Image      string
}

// HasImage selects between the two info templates.
func (r Record) HasImage() bool { return r.Image != "" }
