package sharing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/sharing"
)

func TestShareURL(t *testing.T) {
	got, err := sharing.ShareURL(config.ShareBaseURL, "abc_-1")
	require.NoError(t, err)
	assert.Equal(t, "https://mmmotivator.com/#config=abc_-1", got)

	got, err = sharing.ShareURL("http://localhost:8080/view?x=1#old", "tok")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/view?x=1#config=tok", got)

	_, err = sharing.ShareURL("ftp://example.com", "tok")
	assert.Error(t, err)

	_, err = sharing.ShareURL("://bad", "tok")
	assert.Error(t, err)
}

func TestTokenFromURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"Fragment", "https://mmmotivator.com/#config=eJx_-", "eJx_-", true},
		{"Fragment among others", "https://example.com/#a=1&config=tok", "tok", true},
		{"Query", "https://example.com/?config=tok", "tok", true},
		{"Bare token", "eJxLTEoGAAJNASc", "eJxLTEoGAAJNASc", true},
		{"Bare with prefix", "config=tok", "tok", true},
		{"Surrounding space", "  https://example.com/#config=tok \n", "tok", true},
		{"URL without token", "https://example.com/#other=1", "", false},
		{"Empty", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sharing.TokenFromURL(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShareURL_RoundTrip(t *testing.T) {
	token, err := sharing.EncodeConfig(lifeconfig.Default())
	require.NoError(t, err)

	link, err := sharing.ShareURL(config.ShareBaseURL, token)
	require.NoError(t, err)

	extracted, ok := sharing.TokenFromURL(link)
	require.True(t, ok)
	assert.Equal(t, token, extracted)

	cfg, ok := sharing.DecodeConfig(extracted)
	require.True(t, ok)
	assert.Equal(t, lifeconfig.Default().Birthdate, cfg.Birthdate)
}
