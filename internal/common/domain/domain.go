// Package domain loads the conversational domain tables: category
// localization, supported cuisines, seating cues and reply template keys.
package domain

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Templates names the reply templates the actions emit.
type Templates struct {
	NotFound          string `yaml:"not_found"`
	FullInfo          string `yaml:"full_info"`
	InfoWithoutImage  string `yaml:"info_without_image"`
	WrongCuisine      string `yaml:"wrong_cuisine"`
	WrongPartySize    string `yaml:"wrong_party_size"`
	WrongSeating      string `yaml:"wrong_seating"`
	SubmissionConfirm string `yaml:"submission_confirmed"`
}

// Seating holds the cue tokens the outdoor-seating validator looks for.
type Seating struct {
	Outdoor string `yaml:"outdoor"`
	Indoor  string `yaml:"indoor"`
}

type File struct {
	Version      string            `yaml:"version"`
	Localization map[string]string `yaml:"localization"`
	Cuisines     []string          `yaml:"cuisines"`
	Seating      Seating           `yaml:"seating"`
	Templates    Templates         `yaml:"templates"`
}

// Default returns the built-in tables.
func Default() File {
	return File{
		Version: "builtin",
		Localization: map[string]string{
			"normal":   "normal",
			"fighting": "lucha",
			"flying":   "volador",
			"poison":   "veneno",
			"ground":   "tierra",
			"rock":     "roca",
			"bug":      "bicho",
			"ghost":    "fantasma",
			"steel":    "acero",
			"fire":     "fuego",
			"water":    "agua",
			"grass":    "planta",
			"electric": "eléctrico",
			"psychic":  "psíquico",
			"ice":      "hielo",
			"dragon":   "dragón",
			"dark":     "siniestro",
			"fairy":    "hada",
		},
		Cuisines: []string{"caribeña", "china", "francesa", "griega", "india", "italiana", "mexicana"},
		Seating:  Seating{Outdoor: "fuera", Indoor: "dentro"},
		Templates: Templates{
			NotFound:          "utter_pokemon_no_encontrado",
			FullInfo:          "utter_info_pokemon",
			InfoWithoutImage:  "utter_info_pokemon_sin_imagen",
			WrongCuisine:      "utter_cocina_equivocada",
			WrongPartySize:    "utter_numero_personas_equivocada",
			WrongSeating:      "utter_asiento_exterior_equivocado",
			SubmissionConfirm: "utter_submit",
		},
	}
}

// Load reads a domain file. Sections absent from the file keep their
// built-in values; an empty path returns Default().
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read domain file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse domain file: %w", err)
	}
	f = withDefaults(f)
	if err := f.validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func withDefaults(f File) File {
	d := Default()
	if f.Version == "" {
		f.Version = d.Version
	}
	if len(f.Localization) == 0 {
		f.Localization = d.Localization
	}
	if len(f.Cuisines) == 0 {
		f.Cuisines = d.Cuisines
	}
	if f.Seating.Outdoor == "" {
		f.Seating.Outdoor = d.Seating.Outdoor
	}
	if f.Seating.Indoor == "" {
		f.Seating.Indoor = d.Seating.Indoor
	}

	t, dt := &f.Templates, d.Templates
	orDefault(&t.NotFound, dt.NotFound)
	orDefault(&t.FullInfo, dt.FullInfo)
	orDefault(&t.InfoWithoutImage, dt.InfoWithoutImage)
	orDefault(&t.WrongCuisine, dt.WrongCuisine)
	orDefault(&t.WrongPartySize, dt.WrongPartySize)
	orDefault(&t.WrongSeating, dt.WrongSeating)
	orDefault(&t.SubmissionConfirm, dt.SubmissionConfirm)
	return f
}

func orDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func (f File) validate() error {
	for k, v := range f.Localization {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("domain localization: empty translation for %q", k)
		}
	}
	for _, c := range f.Cuisines {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("domain cuisines: empty entry")
		}
	}
	if strings.EqualFold(f.Seating.Outdoor, f.Seating.Indoor) {
		return fmt.Errorf("domain seating: outdoor and indoor cues must differ")
	}
	return nil
}
