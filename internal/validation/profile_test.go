package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsReservedUsername(t *testing.T) {
	t.Parallel()
	assert.True(t, IsReservedUsername("admin"))
	assert.True(t, IsReservedUsername("Circle"))
	assert.False(t, IsReservedUsername("alice"))
}

func TestValidateLinkURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"Valid https", "https://github.com/alice", false},
		{"Valid http", "http://example.com", false},
		{"Missing scheme", "github.com/alice", true},
		{"Javascript scheme", "javascript:alert(1)", true},
		{"No host", "https://", true},
		{"Too long", "https://example.com/" + strings.Repeat("a", 2048), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLinkURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFullnameAndBio(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateFullname("Alice Example"))
	assert.Error(t, ValidateFullname(strings.Repeat("a", 101)))
	assert.NoError(t, ValidateBio("Short bio"))
	assert.Error(t, ValidateBio(strings.Repeat("a", 501)))
}
