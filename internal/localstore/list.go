package localstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// ReadList decodes the entity list saved under key. The returned slice is
// never nil: an absent key reads as empty, and undecodable data reads as
// empty together with a *content.MalformedLocalDataError for the caller to log.
// Array elements that are not objects are skipped.
func ReadList(ctx context.Context, s Store, key string) ([]content.Entity, error) {
	items := []content.Entity{}
	if s == nil {
		return items, nil
	}
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return items, nil
	}
	if err != nil {
		return items, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return items, &content.MalformedLocalDataError{Key: key, Err: err}
	}
	for _, r := range raw {
		if trimmed := bytes.TrimSpace(r); len(trimmed) == 0 || trimmed[0] != '{' {
			continue
		}
		var e content.Entity
		if err := json.Unmarshal(r, &e); err != nil {
			continue
		}
		if e.Source == "" {
			e.Source = content.SourceLocal
		}
		items = append(items, e)
	}
	return items, nil
}

// WriteList replaces the list saved under key.
func WriteList(ctx context.Context, s Store, key string, items []content.Entity) error {
	if items == nil {
		items = []content.Entity{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// ReadJSON decodes the value under key into dst. It reports found=false for
// an absent key and wraps decoding failures in *content.MalformedLocalDataError.
func ReadJSON(ctx context.Context, s Store, key string, dst any) (found bool, err error) {
	if s == nil {
		return false, nil
	}
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, &content.MalformedLocalDataError{Key: key, Err: err}
	}
	return true, nil
}

// WriteJSON encodes v under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
