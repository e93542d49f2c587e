package client

import (
	"strings"
)

// Content-type aliases mapped to full MIME strings. Unrecognized aliases are
// stored verbatim.
var contentTypeAliases = map[string]string{
	"json":       "application/json",
	"form":       "application/x-www-form-urlencoded",
	"urlencoded": "application/x-www-form-urlencoded",
	"multipart":  "multipart/form-data",
}

const contentTypeKey = "content-type"

// normalizeHeaders returns a fresh map with every key lowercased. When two
// case variants of the same key collide, the later entry wins.
func normalizeHeaders(headers map[string]string) map[string]string {
	normalized := make(map[string]string, len(headers))
	for key, value := range headers {
		normalized[strings.ToLower(key)] = value
	}
	return normalized
}

// mergeHeaders merges overrides into dst, lowercasing override keys.
func mergeHeaders(dst, overrides map[string]string) {
	for key, value := range overrides {
		dst[strings.ToLower(key)] = value
	}
}

// resolveHeaders computes the final header map for one call from its layered
// sources, in ascending precedence: base headers, per-call overrides, the
// WithHeaders hook, and the header-func hook. The result is always a fresh
// map; the client's own headers are never mutated.
func resolveHeaders(base, perCall, withHeaders map[string]string, withHeadersFunc, headerFunc HeaderHook) map[string]string {
	resolved := make(map[string]string, len(base))
	for key, value := range base {
		resolved[key] = value
	}

	mergeHeaders(resolved, perCall)

	// The WithHeaders hook may be a callable or a literal map; a callable
	// takes priority when both were configured.
	if withHeadersFunc != nil {
		mergeHeaders(resolved, withHeadersFunc())
	} else if withHeaders != nil {
		mergeHeaders(resolved, withHeaders)
	}

	// The header-func hook runs last, so its entries win.
	if headerFunc != nil {
		mergeHeaders(resolved, headerFunc())
	}

	return resolved
}
