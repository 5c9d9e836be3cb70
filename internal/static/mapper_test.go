package static

import (
	"strings"
	"testing"

	"github.com/MrSnakeDoc/banho/internal/content"
)

func TestMapEntities(t *testing.T) {
	tests := []struct {
		name    string
		records []map[string]any
		wantLen int
	}{
		{
			name:    "keeps records with id",
			records: []map[string]any{{"id": "a", "title": "A"}, {"id": 2}},
			wantLen: 2,
		},
		{
			name:    "generates id from title",
			records: []map[string]any{{"titulo": "Fogueira"}},
			wantLen: 1,
		},
		{
			name:    "falls back to name",
			records: []map[string]any{{"nome": "Comunidade"}},
			wantLen: 1,
		},
		{
			name:    "drops records with neither id nor title",
			records: []map[string]any{{"image": "x.jpg"}, nil},
			wantLen: 0,
		},
	}

	m := NewMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MapEntities(content.DomainStories, tt.records)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			for _, e := range got {
				if e.Source != content.SourceStatic {
					t.Errorf("source = %q, want static", e.Source)
				}
				if e.ID == "" {
					t.Error("empty id")
				}
			}
		})
	}
}

func TestGenerateIDIsStable(t *testing.T) {
	a := generateID(content.DomainStories, "Fogueira")
	b := generateID(content.DomainStories, "Fogueira")
	c := generateID(content.DomainPostcards, "Fogueira")

	if a != b {
		t.Errorf("ids differ for same input: %s vs %s", a, b)
	}
	if a == c {
		t.Error("ids collide across domains")
	}
	if !strings.HasPrefix(a, "static_") || len(a) != len("static_")+12 {
		t.Errorf("unexpected id format %q", a)
	}
}
