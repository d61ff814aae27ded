package client

import (
	"net/http"
	"net/url"
	"strings"
)

// TokenSource yields the anti-forgery token sent with each submission.
type TokenSource interface {
	Token() (string, bool)
}

// JarTokenSource reads the token from the cookie jar entry for URL.
type JarTokenSource struct {
	Jar  http.CookieJar
	URL  *url.URL
	Name string
}

func (s *JarTokenSource) Token() (string, bool) {
	if s.Jar == nil || s.URL == nil {
		return "", false
	}
	return ParseCookie(CookieString(s.Jar.Cookies(s.URL)), s.Name)
}

// StaticToken is a fixed token, for endpoints that hand it out of band.
type StaticToken string

func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}

// CookieString joins cookies the way a browser exposes them to scripts:
// "a=1; b=2".
func CookieString(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// ParseCookie looks up name in a "name=value; other=value" string. Matching is
// exact on the name, values are URL-decoded, and the last match wins.
func ParseCookie(raw, name string) (string, bool) {
	if raw == "" || name == "" {
		return "", false
	}

	var (
		value string
		found bool
	)
	prefix := name + "="
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if !strings.HasPrefix(pair, prefix) {
			continue
		}
		v := pair[len(prefix):]
		if decoded, err := url.PathUnescape(v); err == nil {
			v = decoded
		}
		value, found = v, true
	}
	return value, found
}
