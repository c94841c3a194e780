package db

import (
	"net/url"
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts either a URL style DSN (postgres://...) or a lib/pq
// key=value list. It trims quotes and whitespace and, if given key=value
// form, returns it cleaned with sslmode defaulted.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	// If it does not look like key=value pairs, return unchanged (driver will error)
	if !kvPairRegex.MatchString(s) {
		return s
	}
	fields := strings.Fields(s)
	cleaned := strings.Join(fields, " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// DSNFromCredentials derives a postgres DSN from the stored endpoint URL and
// access key. A full postgres:// endpoint is honored as-is, with the key
// filling in a missing password; a bare host gets conventional defaults.
func DSNFromCredentials(endpoint, key string) string {
	s := strings.TrimSpace(endpoint)
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		u, err := url.Parse(s)
		if err != nil {
			return s
		}
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		if _, hasPass := u.User.Password(); !hasPass && key != "" {
			u.User = url.UserPassword(user, key)
		}
		if u.Path == "" || u.Path == "/" {
			u.Path = "/postgres"
		}
		return u.String()
	}
	host := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(s, "https://"), "http://"), "/")
	u := &url.URL{Scheme: "postgres", Host: host, Path: "/postgres"}
	if !strings.Contains(host, ":") {
		u.Host = host + ":5432"
	}
	u.User = url.UserPassword("postgres", key)
	q := url.Values{}
	q.Set("sslmode", "require")
	u.RawQuery = q.Encode()
	return u.String()
}
