package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveField_Order(t *testing.T) {
	e := &Entity{
		Translations: map[Lang]Translation{
			EN: {"title": "Saint John's Bath"},
			PT: {"title": "Banho de São João", "content": "Texto em português"},
		},
		Fields: Translation{"title": "legacy", "content": "legacy content", "author": "Dona Maria"},
	}

	tests := []struct {
		name  string
		lang  Lang
		field string
		want  string
	}{
		{"requested language wins", EN, "title", "Saint John's Bath"},
		{"falls back to portuguese", EN, "content", "Texto em português"},
		{"unknown language falls back to portuguese", "fr", "title", "Banho de São João"},
		{"falls back to legacy field", EN, "author", "Dona Maria"},
		{"legacy alias resolves through canonical name", EN, "autor", "Dona Maria"},
		{"missing everywhere is empty", ES, "excerpt", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveField(e, tt.lang, tt.field))
		})
	}
}

func TestResolveField_NilEntity(t *testing.T) {
	assert.Equal(t, "", ResolveField(nil, EN, "title"))
}

func TestResolveField_BlankTranslationIsSkipped(t *testing.T) {
	e := &Entity{
		Translations: map[Lang]Translation{EN: {"title": "   "}, PT: {"title": "Fogueira"}},
	}
	assert.Equal(t, "Fogueira", ResolveField(e, EN, "title"))
}

func TestResolveField_HandBuiltAliasKey(t *testing.T) {
	e := &Entity{Fields: Translation{"autor": "Seu Zé"}}
	assert.Equal(t, "Seu Zé", ResolveField(e, ES, "author"))
}

func TestResolveEntity_AuthorFallbackAcrossShapes(t *testing.T) {
	var e Entity
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"translations": {"en": {"title": "Bath"}},
		"pt": {"title": "Banho"},
		"autor": "Seu Zé"
	}`), &e))

	got := ResolveEntity(e, EN)
	assert.Equal(t, "Bath", got.Fields["title"])
	assert.Equal(t, "Seu Zé", got.Fields["author"])
	assert.Equal(t, "", got.Fields["content"])

	gotPT := ResolveEntity(e, PT)
	assert.Equal(t, "Banho", gotPT.Fields["title"])

	// the input must not be mutated
	assert.NotContains(t, e.Fields, "title")
}

func TestResolveEntity_KeepsIdentityAndAttrs(t *testing.T) {
	e := Entity{
		ID:     "story_1",
		Source: SourceLocal,
		Attrs:  map[string]any{"image": "/img/fogueira.jpg"},
		Fields: Translation{"title": "Fogueira"},
	}
	got := ResolveEntity(e, ES)
	assert.Equal(t, "story_1", got.ID)
	assert.Equal(t, SourceLocal, got.Source)
	assert.Equal(t, "/img/fogueira.jpg", got.Attrs["image"])
	assert.Equal(t, "Fogueira", got.Fields["title"])
}

func TestResolveAll(t *testing.T) {
	items := []Entity{
		{Translations: map[Lang]Translation{PT: {"title": "Um"}, EN: {"title": "One"}}},
		{Fields: Translation{"title": "Dois"}},
	}
	got := ResolveAll(items, EN)
	require.Len(t, got, 2)
	assert.Equal(t, "One", got[0].Fields["title"])
	assert.Equal(t, "Dois", got[1].Fields["title"])
}
