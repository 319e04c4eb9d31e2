package ytplayer

import (
	"net/url"
	"strings"
)

const shortLinkHost = "youtu.be"

// ParseQueryString splits a raw query string on "&" then "=". A pair without
// "=" contributes no entry. Duplicate keys overwrite earlier ones.
func ParseQueryString(query string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(query, "&") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}

		params[key] = value
	}

	return params
}

// ExtractVideoID pulls a video id out of a watch, embed or short-link URL.
// Precedence: short-link host first, then an "embed" path segment, then the
// "v" query parameter. Host matching is suffix-based, so subdomains of the
// short-link host are accepted.
func ExtractVideoID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	segments := pathSegments(u.Path)

	if strings.HasSuffix(u.Host, shortLinkHost) && len(segments) > 0 {
		return segments[0], true
	}

	for _, segment := range segments {
		if segment == "embed" {
			last := segments[len(segments)-1]
			return last, true
		}
	}

	if id, ok := ParseQueryString(u.RawQuery)["v"]; ok {
		return id, true
	}

	return "", false
}

func pathSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}
