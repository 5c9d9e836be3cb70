package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/banho/internal/content"
)

func TestLoaderLoadEmbedded(t *testing.T) {
	ds, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for _, d := range content.Domains {
		if len(ds.Lists[d]) == 0 {
			t.Errorf("domain %s is empty", d)
		}
	}
	if len(ds.Overrides) != 0 {
		t.Errorf("Overrides = %v, want none", ds.Overrides)
	}

	for _, e := range ds.Lists[content.DomainStories] {
		if e.Source != content.SourceStatic {
			t.Errorf("story %s has source %q, want static", e.ID, e.Source)
		}
		if e.ID == "" {
			t.Error("story without id")
		}
	}
}

func TestLoaderLegacyStoryResolves(t *testing.T) {
	ds, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var found bool
	for _, e := range ds.Lists[content.DomainStories] {
		if e.ID != "historia-cururu" {
			continue
		}
		found = true
		if got := content.ResolveField(&e, content.EN, "author"); got != "Grupo Flor do Pantanal" {
			t.Errorf("author = %q", got)
		}
		if e.Category != "musica" {
			t.Errorf("category = %q, want musica", e.Category)
		}
	}
	if !found {
		t.Fatal("legacy story not loaded")
	}
}

func TestLoaderSeedOverride(t *testing.T) {
	tmpDir := t.TempDir()

	yamlContent := `
- id: seed-1
  category: tradicoes
  translations:
    pt:
      title: Banho de teste
    en:
      title: Test bath
- titulo: Sem id
`
	if err := os.WriteFile(filepath.Join(tmpDir, "stories.yaml"), []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create seed file: %v", err)
	}

	ds, err := NewLoader(tmpDir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	stories := ds.Lists[content.DomainStories]
	if len(stories) != 2 {
		t.Fatalf("len(stories) = %d, want 2", len(stories))
	}
	if stories[0].ID != "seed-1" {
		t.Errorf("first id = %q, want seed-1", stories[0].ID)
	}
	if got := content.ResolveField(&stories[0], content.EN, "title"); got != "Test bath" {
		t.Errorf("en title = %q", got)
	}
	if stories[1].ID == "" {
		t.Error("id-less record did not get a generated id")
	}
	if len(ds.Overrides) != 1 {
		t.Errorf("Overrides = %v, want one entry", ds.Overrides)
	}

	// untouched domains still come from the embedded dataset
	if len(ds.Lists[content.DomainPostcards]) == 0 {
		t.Error("postcards lost after override")
	}
}

func TestLoaderSeedMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "postcards.json"), []byte(`{not json`), 0o644); err != nil {
		t.Fatalf("Failed to create seed file: %v", err)
	}

	if _, err := NewLoader(tmpDir).Load(); err == nil {
		t.Fatal("Load() expected error for malformed seed file")
	}
}

func TestLoaderRaw(t *testing.T) {
	data, err := NewLoader("").Raw("admin_users.json")
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Raw() returned no data")
	}

	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "admin_users.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err = NewLoader(tmpDir).Raw("admin_users.json")
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Raw() = %q, want seed override", data)
	}
}

func TestDatasetGaleriaYears(t *testing.T) {
	ds, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	years := ds.GaleriaYears()
	if len(years) != 2 || years[0] != 2023 || years[1] != 2024 {
		t.Errorf("GaleriaYears() = %v, want [2023 2024]", years)
	}
	if ds.Count() == 0 {
		t.Error("Count() = 0")
	}
}
