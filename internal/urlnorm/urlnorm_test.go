package urlnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Result
	}{
		{
			name: "bare domain gets https",
			raw:  "example.com",
			want: Result{
				URL:        "https://example.com",
				Domain:     "example.com",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.com&sz=32",
			},
		},
		{
			name: "http kept",
			raw:  "http://example.com/a?b=c",
			want: Result{
				URL:        "http://example.com/a?b=c",
				Domain:     "example.com",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.com&sz=32",
			},
		},
		{
			name: "www stripped and host lowercased",
			raw:  "https://WWW.Go.dev/doc",
			want: Result{
				URL:        "https://WWW.Go.dev/doc",
				Domain:     "go.dev",
				FaviconURL: "https://www.google.com/s2/favicons?domain=go.dev&sz=32",
			},
		},
		{
			name: "upper-case https scheme lowered",
			raw:  "HTTPS://Example.org/Path",
			want: Result{
				URL:        "https://Example.org/Path",
				Domain:     "example.org",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.org&sz=32",
			},
		},
		{
			name: "mixed-case http scheme lowered",
			raw:  "HtTp://example.org",
			want: Result{
				URL:        "http://example.org",
				Domain:     "example.org",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.org&sz=32",
			},
		},
		{
			name: "port dropped from domain",
			raw:  "localhost:8080/x",
			want: Result{
				URL:        "https://localhost:8080/x",
				Domain:     "localhost",
				FaviconURL: "https://www.google.com/s2/favicons?domain=localhost&sz=32",
			},
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  example.com  ",
			want: Result{
				URL:        "https://example.com",
				Domain:     "example.com",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.com&sz=32",
			},
		},
		{
			name: "unparseable host keeps url",
			raw:  "exa mple.com",
			want: Result{URL: "https://exa mple.com"},
		},
		{
			name: "empty",
			raw:  "",
			want: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestFormatURLAlwaysLowerScheme(t *testing.T) {
	for _, raw := range []string{"HTTP://a.com", "HTTPS://a.com", "Https://a.com", "a.com"} {
		got := FormatURL(raw)
		if !strings.HasPrefix(got, "http://") && !strings.HasPrefix(got, "https://") {
			t.Errorf("FormatURL(%q) = %q, want lower-case http(s) prefix", raw, got)
		}
	}
}

func TestDomainOnlyStripsLeadingWWW(t *testing.T) {
	assert.Equal(t, "blog.www.example.com", Domain("https://blog.www.example.com"))
	assert.Equal(t, "", FaviconURL("https://"))
}
