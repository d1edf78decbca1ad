// Package urlnorm canonicalizes user-entered addresses and derives the
// domain and favicon URL shown next to a link.
package urlnorm

import (
	"fmt"
	"net/url"
	"strings"
)

const faviconTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=32"

// Result holds a normalized URL and the values derived from it.
// Domain and FaviconURL are empty when the URL has no parseable host.
type Result struct {
	URL        string
	Domain     string
	FaviconURL string
}

// Normalize prepends https:// when raw has no http(s) scheme and derives the
// domain and favicon URL. It never fails; derivations are best effort.
func Normalize(raw string) Result {
	formatted := FormatURL(raw)
	if formatted == "" {
		return Result{}
	}
	domain := domainOf(formatted)
	return Result{
		URL:        formatted,
		Domain:     domain,
		FaviconURL: faviconFor(domain),
	}
}

// FormatURL trims raw and adds an https:// prefix when no http(s) scheme is
// present. An existing scheme is lower-cased.
func FormatURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(lower, scheme) {
			return scheme + raw[len(scheme):]
		}
	}
	return "https://" + raw
}

// Domain returns the host of raw without a leading "www.", or "" when raw
// cannot be parsed.
func Domain(raw string) string {
	return domainOf(FormatURL(raw))
}

// FaviconURL returns the favicon service URL for raw's domain, or "".
func FaviconURL(raw string) string {
	return faviconFor(Domain(raw))
}

func domainOf(formatted string) string {
	if formatted == "" {
		return ""
	}
	u, err := url.Parse(formatted)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

func faviconFor(domain string) string {
	if domain == "" {
		return ""
	}
	return fmt.Sprintf(faviconTemplate, url.QueryEscape(domain))
}
