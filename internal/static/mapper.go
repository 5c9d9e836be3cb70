package static

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Mapper converts decoded dataset records into static entities.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// MapEntities normalizes records, tags them static and gives id-less
// records a stable id derived from their Portuguese title, so merges and
// the immutability guard can still recognize them after a reload.
func (m *Mapper) MapEntities(d content.Domain, records []map[string]any) []content.Entity {
	out := make([]content.Entity, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		e := content.Normalize(rec)
		e.Source = content.SourceStatic
		if e.ID == "" {
			title := content.ResolveField(&e, content.DefaultLang, "title")
			if title == "" {
				title = content.ResolveField(&e, content.DefaultLang, "name")
			}
			if title == "" {
				continue
			}
			e.ID = generateID(d, title)
		}
		out = append(out, e)
	}
	return out
}

// generateID creates a deterministic id: "static_" + the first 12 hex chars
// of sha256(domain + ":" + title).
func generateID(d content.Domain, title string) string {
	h := sha256.Sum256([]byte(string(d) + ":" + title))
	return "static_" + hex.EncodeToString(h[:])[:12]
}
