package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownHTML(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		contains    []string
		notContains []string
	}{
		{
			name:     "emphasis and paragraphs",
			src:      "O banho de **São João**.\n\nSegundo parágrafo.",
			contains: []string{"<strong>São João</strong>", "<p>Segundo parágrafo.</p>"},
		},
		{
			name:        "raw html is dropped",
			src:         "Olá <script>alert(1)</script> mundo",
			notContains: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:        "javascript links are neutralized",
			src:         "[clique](javascript:alert(1))",
			notContains: []string{"javascript:"},
		},
		{
			name:     "links keep safe hrefs",
			src:      "[site](https://banhodesaojoao.ms)",
			contains: []string{`href="https://banhodesaojoao.ms"`},
		},
		{
			name:     "hard wraps",
			src:      "linha um\nlinha dois",
			contains: []string{"<br"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarkdownHTML(tt.src)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestMarkdownHTML_Empty(t *testing.T) {
	got, err := MarkdownHTML("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
