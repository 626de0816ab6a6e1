package crawler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTPS://WWW.Example.ORG/Hotels/", "https://www.example.org/Hotels/"},
		{"removes default https port", "https://example.org:443/a", "https://example.org/a"},
		{"removes default http port", "http://example.org:80/a", "http://example.org/a"},
		{"drops fragment", "https://example.org/a#map", "https://example.org/a"},
		{"sorts query parameters", "https://example.org/a?b=2&a=1", "https://example.org/a?a=1&b=2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeURL(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListingPageURL(t *testing.T) {
	root, err := url.Parse("https://example.org/corfu/hotels/")
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/corfu/hotels/", listingPageURL(root, 1))
	assert.Equal(t, "https://example.org/corfu/hotels/?page=2", listingPageURL(root, 2))
	assert.Equal(t, "https://example.org/corfu/hotels/?page=7", listingPageURL(root, 7))
}

func TestResolveRef(t *testing.T) {
	base, err := url.Parse("https://example.org/corfu/hotels/")
	require.NoError(t, err)

	resolved, err := ResolveRef(base, "/corfu/hotels/hotel-a/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/corfu/hotels/hotel-a/", resolved.String())

	_, err = ResolveRef(base, "mailto:info@example.org")
	assert.Error(t, err)
}
