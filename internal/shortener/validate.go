package shortener

import "net/url"

// IsValidURL reports whether candidate is an absolute http or https URL.
// The check is purely syntactic. url.Parse lower-cases the scheme, so
// "HTTPS://example.com" is accepted.
func IsValidURL(candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != "" && u.Opaque == ""
}
