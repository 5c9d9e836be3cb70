package static

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/banho/internal/content"
)

//go:embed data/*.json
var embedded embed.FS

// Loader reads the static dataset shipped in the binary, optionally
// overridden file by file from a seed directory.
type Loader struct {
	base    fs.FS
	seedDir string
	mapper  *Mapper
}

// NewLoader creates a loader over the embedded dataset. seedDir may be empty.
func NewLoader(seedDir string) *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return &Loader{base: sub, seedDir: seedDir, mapper: NewMapper()}
}

// Load reads every domain. A domain file in the seed directory
// ({domain}.json, .yaml or .yml) replaces the embedded one.
func (l *Loader) Load() (*Dataset, error) {
	ds := &Dataset{Lists: make(map[content.Domain][]content.Entity, len(content.Domains))}

	for _, d := range content.Domains {
		records, origin, err := l.readDomain(d)
		if err != nil {
			return nil, err
		}
		ds.Lists[d] = l.mapper.MapEntities(d, records)
		if origin != "" {
			ds.Overrides = append(ds.Overrides, origin)
		}
	}
	return ds, nil
}

// Raw returns the bytes of a named file, seed directory first.
func (l *Loader) Raw(name string) ([]byte, error) {
	if l.seedDir != "" {
		data, err := os.ReadFile(filepath.Join(l.seedDir, name))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read seed file %s: %w", name, err)
		}
	}
	return fs.ReadFile(l.base, name)
}

// readDomain returns the decoded records of one domain and, when they came
// from the seed directory, the file path they were read from.
func (l *Loader) readDomain(d content.Domain) ([]map[string]any, string, error) {
	if l.seedDir != "" {
		for _, ext := range []string{".json", ".yaml", ".yml"} {
			path := filepath.Join(l.seedDir, string(d)+ext)
			data, err := os.ReadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, "", fmt.Errorf("failed to read seed file: %w", err)
			}
			records, err := decodeRecords(data, ext != ".json")
			if err != nil {
				return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
			}
			return records, path, nil
		}
	}

	data, err := fs.ReadFile(l.base, string(d)+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read embedded %s: %w", d, err)
	}
	records, err := decodeRecords(data, false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse embedded %s: %w", d, err)
	}
	return records, "", nil
}

func decodeRecords(data []byte, isYAML bool) ([]map[string]any, error) {
	var records []map[string]any
	if isYAML {
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, err
		}
		return records, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
