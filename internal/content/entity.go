package content

import (
	"bytes"
	"encoding/json"
	"maps"
)

// Lang is a content language code, reduced to its ISO 639 base ("pt", "en", "es").
type Lang string

const (
	PT Lang = "pt"
	EN Lang = "en"
	ES Lang = "es"

	// DefaultLang is the language every lookup falls back to.
	DefaultLang = PT
)

// SupportedLangs lists the languages the site ships translations for.
var SupportedLangs = []Lang{PT, EN, ES}

// Source tags where an entity was read from.
type Source string

const (
	SourceStatic Source = "static"
	SourceAPI    Source = "api"
	SourceLocal  Source = "local"
)

// Translation holds one language's display fields. Keys vary per entity kind.
type Translation map[string]string

// Entity is the canonical shape every content item is normalized into,
// whatever layout the upstream API, the local store or the static dataset used.
type Entity struct {
	// ID is unique within a domain. Numeric ids are kept in their decimal form.
	ID     string
	Source Source

	// Translations merges the "translations" map with flat per-language objects.
	// The translations map wins when both carry the same field.
	Translations map[Lang]Translation

	// Fields holds legacy top-level display fields (title, content, author...)
	// with aliases folded into their canonical names.
	Fields Translation

	Category   string
	Categories []string
	Date       string

	// Attrs keeps every other top-level attribute untouched (image, year, link...).
	Attrs map[string]any
}

// Clone returns a copy that shares no maps or slices with e.
func (e Entity) Clone() Entity {
	out := e
	if e.Translations != nil {
		out.Translations = make(map[Lang]Translation, len(e.Translations))
		for lang, tr := range e.Translations {
			out.Translations[lang] = maps.Clone(tr)
		}
	}
	out.Fields = maps.Clone(e.Fields)
	out.Attrs = maps.Clone(e.Attrs)
	if e.Categories != nil {
		out.Categories = append([]string(nil), e.Categories...)
	}
	return out
}

// Attr returns a top-level attribute as a string, or "" when absent.
func (e *Entity) Attr(key string) string {
	if e == nil || e.Attrs == nil {
		return ""
	}
	s, _ := scalarString(e.Attrs[key])
	return s
}

// MarshalJSON writes the entity back in the flat wire layout the SPA and
// the upstream API understand: attributes and display fields at top level,
// plus a "translations" map.
func (e Entity) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Attrs)+len(e.Fields)+6)
	maps.Copy(out, e.Attrs)
	for k, v := range e.Fields {
		out[k] = v
	}
	if e.ID != "" {
		out["id"] = e.ID
	}
	if e.Source != "" {
		out["source"] = e.Source
	}
	if len(e.Translations) > 0 {
		out["translations"] = e.Translations
	}
	if e.Category != "" {
		out["category"] = e.Category
	}
	if len(e.Categories) > 0 {
		out["categories"] = e.Categories
	}
	if e.Date != "" {
		out["date"] = e.Date
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts any of the known layouts and normalizes it.
// Numbers are kept as json.Number so large numeric ids survive.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*e = Normalize(raw)
	return nil
}
