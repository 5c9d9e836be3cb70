package content

// ResolveField returns the display value of field for lang. Lookup order:
// the requested language, then Portuguese, then the legacy top-level field
// or one of its aliases. A missing value resolves to "" and never fails.
func ResolveField(e *Entity, lang Lang, field string) string {
	if e == nil {
		return ""
	}
	field = CanonicalField(field)

	if v := e.Translations[lang][field]; !isBlank(v) {
		return v
	}
	if lang != DefaultLang {
		if v := e.Translations[DefaultLang][field]; !isBlank(v) {
			return v
		}
	}
	if v := e.Fields[field]; !isBlank(v) {
		return v
	}
	// Entities built by hand may still carry an alias key.
	for alias, canonical := range legacyAliases {
		if canonical != field {
			continue
		}
		if v := e.Fields[alias]; !isBlank(v) {
			return v
		}
	}
	return ""
}

// coreFields are always present on a resolved entity, even when empty.
var coreFields = []string{"title", "content", "excerpt", "author"}

// ResolveEntity returns a copy of e whose top-level display fields carry
// the values resolved for lang. The input is left untouched.
func ResolveEntity(e Entity, lang Lang) Entity {
	out := e.Clone()
	if out.Fields == nil {
		out.Fields = Translation{}
	}
	for _, f := range coreFields {
		out.Fields[f] = ResolveField(&e, lang, f)
	}
	for _, f := range []string{"description", "name"} {
		if v := ResolveField(&e, lang, f); v != "" {
			out.Fields[f] = v
		}
	}
	return out
}

// ResolveAll resolves every entity of items for lang.
func ResolveAll(items []Entity, lang Lang) []Entity {
	out := make([]Entity, len(items))
	for i := range items {
		out[i] = ResolveEntity(items[i], lang)
	}
	return out
}
