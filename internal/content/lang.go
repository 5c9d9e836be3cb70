package content

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLang reduces a language tag to its lowercase base ("pt-BR" -> "pt").
// An empty tag means the default language. Unknown but well formed codes are
// kept so that a lookup for them falls back to Portuguese.
func NormalizeLang(tag string) Lang {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return DefaultLang
	}
	t, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		if i := strings.IndexAny(tag, "-_"); i > 0 {
			tag = tag[:i]
		}
		return Lang(strings.ToLower(tag))
	}
	base, _ := t.Base()
	return Lang(base.String())
}

// IsSupported reports whether the site ships translations for lang.
func IsSupported(lang Lang) bool {
	return slices.Contains(SupportedLangs, lang)
}

var (
	slugStrip  = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugMapper = func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '-'
		}
	}
)

// Slug folds a category id or name into a comparable key:
// "Tradições Juninas" and "tradicoes-juninas" produce the same slug.
func Slug(s string) string {
	folded, _, err := transform.String(slugStrip, s)
	if err != nil {
		folded = s
	}
	folded = strings.Map(slugMapper, strings.TrimSpace(folded))

	var b strings.Builder
	prevDash := true
	for _, r := range folded {
		if r == '-' {
			if prevDash {
				continue
			}
			prevDash = true
		} else {
			prevDash = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSuffix(b.String(), "-")
}
