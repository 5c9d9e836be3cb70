package upstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// envelopeKeys are tried, in order, after the caller's own keys when a
// response wraps its payload in an object.
var envelopeKeys = []string{"items", "data", "results"}

// ErrUnexpectedShape is returned when a body holds neither the expected
// value nor an object wrapping it.
var ErrUnexpectedShape = errors.New("unexpected response shape")

// DecodeList accepts a bare JSON array or an object carrying the array
// under one of keys (then "items", "data", "results"). Elements that are
// not objects are skipped. Entities without a source are tagged api.
func DecodeList(body []byte, keys ...string) ([]content.Entity, error) {
	raw, err := unwrap(body, '[', keys)
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	out := make([]content.Entity, 0, len(elems))
	for _, el := range elems {
		if firstByte(el) != '{' {
			continue
		}
		var e content.Entity
		if err := json.Unmarshal(el, &e); err != nil {
			continue
		}
		if e.Source == "" {
			e.Source = content.SourceAPI
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeEntity accepts a bare object, or an object wrapping it under one of
// keys. Since a bare entity is itself an object, the wrapper is only
// recognized when keys name it explicitly.
func DecodeEntity(body []byte, keys ...string) (content.Entity, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return content.Entity{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	raw := json.RawMessage(body)
	for _, k := range keys {
		if inner, ok := top[k]; ok && firstByte(inner) == '{' {
			raw = inner
			break
		}
	}
	var e content.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return content.Entity{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	if e.Source == "" {
		e.Source = content.SourceAPI
	}
	return e, nil
}

// DecodeInts reads a list of integers; numbers encoded as strings are accepted.
func DecodeInts(body []byte, keys ...string) ([]int, error) {
	raw, err := unwrap(body, '[', keys)
	if err != nil {
		return nil, err
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	out := make([]int, 0, len(elems))
	for _, el := range elems {
		var n int
		if err := json.Unmarshal(el, &n); err == nil {
			out = append(out, n)
			continue
		}
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			if n, err := strconv.Atoi(s); err == nil {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

// unwrap returns body itself when it starts with want, otherwise the first
// wrapped value under keys or the envelope keys that starts with want.
func unwrap(body []byte, want byte, keys []string) (json.RawMessage, error) {
	switch firstByte(body) {
	case want:
		return body, nil
	case '{':
	default:
		return nil, ErrUnexpectedShape
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	for _, k := range append(append([]string{}, keys...), envelopeKeys...) {
		if inner, ok := top[k]; ok && firstByte(inner) == want {
			return inner, nil
		}
	}
	return nil, ErrUnexpectedShape
}

func firstByte(b []byte) byte {
	b = bytes.TrimLeft(b, " \t\r\n")
	if len(b) == 0 {
		return 0
	}
	return b[0]
}
