package content

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DisplayFields are the fields the resolver knows how to localize.
var DisplayFields = []string{"title", "content", "excerpt", "author", "description", "name"}

// legacyAliases maps older field names to their canonical display field.
var legacyAliases = map[string]string{
	"autor":     "author",
	"titulo":    "title",
	"conteudo":  "content",
	"resumo":    "excerpt",
	"descricao": "description",
	"nome":      "name",
	"body":      "content",
	"summary":   "excerpt",
}

var displayFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(DisplayFields))
	for _, f := range DisplayFields {
		set[f] = struct{}{}
	}
	return set
}()

// CanonicalField returns the canonical name for a possibly legacy field name.
func CanonicalField(field string) string {
	if c, ok := legacyAliases[field]; ok {
		return c
	}
	return field
}

func isDisplayField(field string) bool {
	_, ok := displayFieldSet[field]
	return ok
}

// Normalize builds an Entity from a decoded record in any of the three
// layouts seen in the wild: a "translations" map, flat per-language objects
// ("pt": {...}), or legacy top-level fields. A nil record yields an empty Entity.
func Normalize(raw map[string]any) Entity {
	e := Entity{
		Translations: map[Lang]Translation{},
		Fields:       Translation{},
		Attrs:        map[string]any{},
	}
	if raw == nil {
		return e
	}

	flat := map[Lang]Translation{}
	aliased := Translation{}
	var fallbackID string

	for key, val := range raw {
		switch key {
		case "id":
			e.ID, _ = scalarString(val)
		case "_id":
			fallbackID, _ = scalarString(val)
		case "source":
			s, _ := scalarString(val)
			e.Source = Source(s)
		case "translations":
			if m, ok := val.(map[string]any); ok {
				for lang, rec := range m {
					if tr := toTranslation(rec); len(tr) > 0 {
						mergeMissing(e.Translations, NormalizeLang(lang), tr)
					}
				}
			}
		case "category", "categoria", "categoryId", "category_id":
			if e.Category == "" || key == "category" {
				if c := categoryID(val); c != "" {
					e.Category = c
				}
			}
		case "categories", "categorias":
			e.Categories = categoryList(val)
		case "date", "data":
			if s, ok := scalarString(val); ok {
				e.Date = s
			} else {
				e.Attrs[key] = val
			}
		default:
			if isLangKey(key) {
				if tr := toTranslation(val); tr != nil {
					flat[Lang(key)] = tr
					continue
				}
			}
			canonical := CanonicalField(key)
			if isDisplayField(canonical) {
				if s, ok := scalarString(val); ok {
					if canonical == key {
						e.Fields[key] = s
					} else {
						aliased[canonical] = s
					}
					continue
				}
			}
			e.Attrs[key] = val
		}
	}

	if e.ID == "" {
		e.ID = fallbackID
	}
	for field, v := range aliased {
		if e.Fields[field] == "" {
			e.Fields[field] = v
		}
	}
	for lang, tr := range flat {
		mergeMissing(e.Translations, lang, tr)
	}
	return e
}

// mergeMissing copies fields of tr into dst[lang] without overwriting
// non-empty values already present.
func mergeMissing(dst map[Lang]Translation, lang Lang, tr Translation) {
	cur, ok := dst[lang]
	if !ok {
		cur = Translation{}
		dst[lang] = cur
	}
	for k, v := range tr {
		if cur[k] == "" {
			cur[k] = v
		}
	}
}

// toTranslation converts a per-language record. It returns nil when val is
// not an object.
func toTranslation(val any) Translation {
	m, ok := val.(map[string]any)
	if !ok {
		return nil
	}
	tr := Translation{}
	aliased := Translation{}
	for k, v := range m {
		s, ok := scalarString(v)
		if !ok {
			continue
		}
		if c := CanonicalField(k); c != k {
			aliased[c] = s
			continue
		}
		tr[k] = s
	}
	for k, v := range aliased {
		if tr[k] == "" {
			tr[k] = v
		}
	}
	return tr
}

// isLangKey reports whether key looks like a bare two-letter language code.
func isLangKey(key string) bool {
	if len(key) != 2 {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 'a' || key[i] > 'z' {
			return false
		}
	}
	return true
}

func categoryID(val any) string {
	if s, ok := scalarString(val); ok {
		return s
	}
	if m, ok := val.(map[string]any); ok {
		for _, k := range []string{"id", "slug", "name"} {
			if s, ok := scalarString(m[k]); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func categoryList(val any) []string {
	items, ok := val.([]any)
	if !ok {
		if c := categoryID(val); c != "" {
			return []string{c}
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if c := categoryID(it); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// scalarString renders JSON/YAML scalars as strings. Objects, arrays and
// nil report false.
func scalarString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
