package storage

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFeedFilename(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 12, 31, 23, 59, 58, 0, time.UTC)

	tests := []struct {
		name       string
		merchantID string
		seq        int
		expected   string
	}{
		{"기본", "acme", 1, "product-feed-acme-20241231235958.xml"},
		{"CamelCase", "AcmeStore", 1, "product-feed-acme-store-20241231235958.xml"},
		{"순번", "acme", 3, "product-feed-acme-20241231235958-3.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, feedFilename(tt.merchantID, at, tt.seq))
		})
	}
}

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"../../etc", `a\b`, "a:b*c?", "tab\there"} {
		got := sanitizeName(input)
		assert.NotContains(t, got, "..", input)
		assert.NotContains(t, got, "/", input)
		assert.NotContains(t, got, `\`, input)
		assert.False(t, strings.ContainsAny(got, `:*?"<>|`+"\t"), input)
	}
}

func TestTruncateByBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncateByBytes("abc", 10))
	assert.Equal(t, "ab", truncateByBytes("abc", 2))

	got := truncateByBytes("가나다", 7)
	assert.Equal(t, "가나", got)
	assert.True(t, utf8.ValidString(got))
}
