// Package sanitize cleans the admin supplied maintenance page content.
package sanitize

import (
	"errors"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidURL is returned by URL for values that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid URL")

// postPolicy allows the markup normally found in post content: links,
// emphasis, lists, headings, images. Scripts, styles and event handlers are
// dropped and only http, https and mailto links survive.
var postPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoFollowOnLinks(false)
	return p
}()

// HTML returns s with every disallowed tag and attribute removed.
func HTML(s string) string {
	return postPolicy.Sanitize(s)
}

// URL trims s and checks that it is an absolute http or https URL.
// An empty value is valid and means "no URL".
func URL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ErrInvalidURL
	}
	if u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}
