package content

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLang(t *testing.T) {
	tests := map[string]Lang{
		"":      PT,
		"pt":    PT,
		"pt-BR": PT,
		"EN":    EN,
		"en_US": EN,
		"es":    ES,
		"fr":    "fr",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeLang(in))
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(ES))
	assert.False(t, IsSupported("fr"))
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Tradições Juninas":    "tradicoes-juninas",
		"tradicoes-juninas":    "tradicoes-juninas",
		"  Forró  pé de serra": "forro-pe-de-serra",
		"São João!":            "sao-joao",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestNewID(t *testing.T) {
	now := time.UnixMilli(1718000000123)
	id := newIDAt("story", now)
	assert.Regexp(t, regexp.MustCompile(`^story_1718000000123_[0-9a-f]{9}$`), id)
	assert.NotEqual(t, id, newIDAt("story", now))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "cannot modify static content", UserMessage(ErrImmutableContent))
	assert.Equal(t, ErrSaveFailed.Error(), UserMessage(errors.Join(errors.New("boom"), ErrSaveFailed)))
	assert.Equal(t, "please check the highlighted fields",
		UserMessage(&ValidationError{Fields: map[string]string{"title": "required"}}))
	assert.Equal(t, "unexpected error", UserMessage(errors.New("boom")))
}

func TestTransportError(t *testing.T) {
	err := &TransportError{Op: "GET", URL: "http://api/stories", StatusCode: 503}
	assert.Contains(t, err.Error(), "503")

	cause := errors.New("connection refused")
	err = &TransportError{Op: "GET", URL: "http://api/stories", Err: cause}
	assert.ErrorIs(t, err, cause)
}
