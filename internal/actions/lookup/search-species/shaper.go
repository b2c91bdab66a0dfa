// internal/actions/lookup/search-species/shaper.go
package searchspecies

import (
	"strconv"
	"strings"

	"dialogue-actions/internal/common/domain"
	"dialogue-actions/pkg/sdk"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Localization maps remote category tags to display names. It is
// read-only after construction.
type Localization struct {
	table map[string]string
}

func NewLocalization(table map[string]string) Localization {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[strings.ToLower(k)] = v
	}
	return Localization{table: copied}
}

func (l Localization) Translate(category string) (string, bool) {
	v, ok := l.table[strings.ToLower(category)]
	return v, ok
}

func (l Localization) Len() int { return len(l.table) }

// Shaper turns payloads into reply directives.
type Shaper struct {
	localization Localization
	templates    domain.Templates
}

func NewShaper(localization Localization, templates domain.Templates) *Shaper {
	return &Shaper{localization: localization, templates: templates}
}

// Record extracts the reply fields. Categories without a translation are
// left out and returned separately, in payload order.
func (s *Shaper) Record(p *Payload) (Record, []string) {
	r := Record{
		ID:   strconv.Itoa(*p.ID),
		Name: cases.Title(language.Und).String(p.Name),
	}
	var untranslated []string
	for _, t := range p.Types {
		if local, ok := s.localization.Translate(t.Type.Name); ok {
			r.Categories = append(r.Categories, local)
		} else {
			untranslated = append(untranslated, t.Type.Name)
		}
	}
	if p.Sprites.FrontDefault != nil {
		r.Image = strings.TrimSpace(*p.Sprites.FrontDefault)
	}
	return r, untranslated
}

// Message picks the full template when an image is present and the
// reduced one otherwise.
func (s *Shaper) Message(r Record) sdk.Message {
	params := map[string]string{
		ParamNumber:     r.ID,
		ParamName:       r.Name,
		ParamCategories: strings.Join(r.Categories, ", "),
	}
	if !r.HasImage() {
		return sdk.Message{Template: s.templates.InfoWithoutImage, Parameters: params}
	}
	params[ParamImage] = r.Image
	return sdk.Message{Template: s.templates.FullInfo, Parameters: params}
}
