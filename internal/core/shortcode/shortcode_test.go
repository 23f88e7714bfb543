package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidCode(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{"six alphanumeric", "abc123", true},
		{"eight uppercase", "ABCDEFGH", true},
		{"mixed case", "aB3dE6f", true},
		{"too short", "ab", false},
		{"five chars", "abc12", false},
		{"nine chars", "ABCDEFGHI", false},
		{"hyphen", "abc-123", false},
		{"underscore", "abc_123", false},
		{"space", "abc 12", false},
		{"unicode letter", "abcdéf", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCode(tt.code))
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https", "https://example.com", true},
		{"http minimal host", "http://x", true},
		{"with path and query", "https://example.com/a/b?c=d", true},
		{"ftp scheme", "ftp://x", false},
		{"no scheme", "example.com", false},
		{"scheme only", "https://", false},
		{"opaque without authority", "http:example.com", false},
		{"opaque mailto-style", "https:user@example.com", false},
		{"plain text", "not a url", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}

func TestGenerate(t *testing.T) {
	code, err := Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
	assert.True(t, IsValidCode(code), "generated code should pass validation")

	for _, c := range code {
		assert.True(t, strings.ContainsRune(charset, c), "unexpected character %q", c)
	}
}

func TestGenerateLengths(t *testing.T) {
	for _, length := range []int{6, 7, 8} {
		code, err := Generate(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
	}

	// Non-positive lengths fall back to the default.
	code, err := Generate(0)
	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
}

func TestGenerateIsNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := Generate(8)
		require.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "20 generated codes should not all collide")
}
