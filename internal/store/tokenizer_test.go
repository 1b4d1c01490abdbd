package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCamelCase(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{"lower", "user", []string{"user"}},
		{"camel", "getUserById", []string{"get", "User", "By", "Id"}},
		{"pascal", "UserService", []string{"User", "Service"}},
		{"acronym kept together", "parseHTTPRequest", []string{"parse", "HTTP", "Request"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, splitCamelCase(tt.input))
		})
	}
}

func TestSplitCodeToken_SnakeCase(t *testing.T) {
	assert.Equal(t, []string{"get", "user", "by", "id"}, splitCodeToken("get_user_by_id"))
}

func TestTokenizeContent_LowercasesAndFiltersShortTokens(t *testing.T) {
	tokens := tokenizeContent("func getUserById() { a := 1 }")
	assert.Contains(t, tokens, "get")
	assert.Contains(t, tokens, "user")
	assert.NotContains(t, tokens, "a") // below minTokenLength
}

func TestTokenizePath_SplitsSegmentsAndIdentifiers(t *testing.T) {
	tokens := tokenizePath("internal/user_service.go")
	assert.Contains(t, tokens, "internal")
	assert.Contains(t, tokens, "user")
	assert.Contains(t, tokens, "service")
	assert.Contains(t, tokens, "go")
}
