package parser

import (
	"net/url"
	"strings"
)

// Site describes the forum the markup comes from.
type Site struct {
	// Domain is the trusted host, links on it or its subdomains are
	// published as-is.
	Domain string `json:"domain"`
	// BaseUrl resolves relative links.
	BaseUrl string `json:"base_url"`
	// Name is the site name advertised by the page (og:site_name or the
	// header logo's alt text).
	Name string `json:"name"`
}

// DefaultSite is the forum this parser was written against.
var DefaultSite = Site{
	Domain:  "f95zone.to",
	BaseUrl: "https://f95zone.to",
	Name:    "F95zone",
}

// IsTrustedHost reports whether host is the site's domain or one of its
// subdomains.
func (s Site) IsTrustedHost(host string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain := strings.ToLower(s.Domain)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func (s Site) resolve(href string) (*url.URL, error) {
	link, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, err
	}
	if link.IsAbs() {
		return link, nil
	}
	base, err := url.Parse(s.BaseUrl)
	if err != nil {
		return nil, err
	}
	return base.ResolveReference(link), nil
}
