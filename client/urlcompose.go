package client

import (
	"regexp"
	"strings"
)

// absoluteURLPattern matches URLs that carry their own scheme. Such targets
// are used verbatim, ignoring any configured prefix.
var absoluteURLPattern = regexp.MustCompile(`^(?:http|https|ftp)://`)

// IsAbsoluteURL reports whether the target matches the absolute-URL pattern.
func IsAbsoluteURL(target string) bool {
	return absoluteURLPattern.MatchString(target)
}

// composeURL joins the configured prefix with the path, passing absolute
// targets through untouched.
func composeURL(prefix, path string) string {
	if IsAbsoluteURL(path) {
		return path
	}
	return prefix + path
}

// appendQuery appends an encoded query string to a URL, choosing the joiner
// based on whether the URL already carries one.
func appendQuery(url, query string) string {
	if query == "" {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&" + query
	}
	return url + "?" + query
}
