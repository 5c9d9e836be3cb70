package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantID    string
		wantTitle map[Lang]string
		wantField map[string]string
	}{
		{
			name:      "translations map",
			raw:       `{"id":"a","translations":{"pt":{"title":"Banho"},"en":{"title":"Bath"}}}`,
			wantID:    "a",
			wantTitle: map[Lang]string{PT: "Banho", EN: "Bath"},
		},
		{
			name:      "flat per-language objects",
			raw:       `{"id":2,"pt":{"title":"Banho"},"es":{"title":"Baño"}}`,
			wantID:    "2",
			wantTitle: map[Lang]string{PT: "Banho", ES: "Baño"},
		},
		{
			name:      "legacy fields with aliases",
			raw:       `{"_id":"legacy-1","titulo":"Banho","autor":"Dona Maria","image":"x.jpg"}`,
			wantID:    "legacy-1",
			wantField: map[string]string{"title": "Banho", "author": "Dona Maria"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Normalize(decode(t, tt.raw))
			assert.Equal(t, tt.wantID, e.ID)
			for lang, title := range tt.wantTitle {
				assert.Equal(t, title, e.Translations[lang]["title"], "lang %s", lang)
			}
			for k, v := range tt.wantField {
				assert.Equal(t, v, e.Fields[k])
			}
		})
	}
}

func TestNormalize_TranslationsMapWinsOverFlat(t *testing.T) {
	e := Normalize(decode(t, `{
		"translations": {"en": {"title": "From map"}},
		"en": {"title": "From flat", "excerpt": "Only flat"}
	}`))
	assert.Equal(t, "From map", e.Translations[EN]["title"])
	assert.Equal(t, "Only flat", e.Translations[EN]["excerpt"])
}

func TestNormalize_CanonicalWinsOverAlias(t *testing.T) {
	e := Normalize(decode(t, `{"author":"Canonical","autor":"Alias"}`))
	assert.Equal(t, "Canonical", e.Fields["author"])
	assert.NotContains(t, e.Fields, "autor")
}

func TestNormalize_Categories(t *testing.T) {
	e := Normalize(decode(t, `{"categoria":"quadrilha","categories":[{"id":"forro"},"fogueira",3]}`))
	assert.Equal(t, "quadrilha", e.Category)
	assert.Equal(t, []string{"forro", "fogueira", "3"}, e.Categories)

	e = Normalize(decode(t, `{"category":{"id":"danca","name":"Dança"}}`))
	assert.Equal(t, "danca", e.Category)
}

func TestNormalize_DateAndAttrs(t *testing.T) {
	e := Normalize(decode(t, `{"data":"2024-06-23","year":2024,"meta":{"x":1}}`))
	assert.Equal(t, "2024-06-23", e.Date)
	assert.EqualValues(t, 2024, e.Attrs["year"])
	assert.Contains(t, e.Attrs, "meta")
}

func TestEntity_UnmarshalJSONKeepsLargeNumericID(t *testing.T) {
	var e Entity
	require.NoError(t, json.Unmarshal([]byte(`{"id":12345678901234567890,"title":"Balão","year":2024}`), &e))
	assert.Equal(t, "12345678901234567890", e.ID)
	assert.Equal(t, "2024", e.Attr("year"))

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"12345678901234567890"`)
}

func TestNormalize_Nil(t *testing.T) {
	e := Normalize(nil)
	assert.Empty(t, e.ID)
	assert.NotNil(t, e.Translations)
	assert.Equal(t, "", ResolveField(&e, EN, "title"))
}

func TestEntity_MarshalJSONFlatLayout(t *testing.T) {
	e := Entity{
		ID:           "s1",
		Source:       SourceStatic,
		Translations: map[Lang]Translation{EN: {"title": "Bath"}},
		Fields:       Translation{"title": "Banho"},
		Category:     "forro",
		Attrs:        map[string]any{"image": "a.jpg"},
	}
	b, err := json.Marshal(e)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "s1", out["id"])
	assert.Equal(t, "static", out["source"])
	assert.Equal(t, "Banho", out["title"])
	assert.Equal(t, "forro", out["category"])
	assert.Equal(t, "a.jpg", out["image"])
	assert.NotContains(t, out, "date")

	var back Entity
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "Bath", back.Translations[EN]["title"])
	assert.Equal(t, SourceStatic, back.Source)
}

func TestEntity_CloneIsDeep(t *testing.T) {
	e := Entity{
		Translations: map[Lang]Translation{PT: {"title": "a"}},
		Categories:   []string{"x"},
	}
	c := e.Clone()
	c.Translations[PT]["title"] = "b"
	c.Categories[0] = "y"
	assert.Equal(t, "a", e.Translations[PT]["title"])
	assert.Equal(t, "x", e.Categories[0])
}
