package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/volley-http/volley/client"
)

// Formatter renders requests and responses as human-readable text.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a text formatter.
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		scheme:  NewColorScheme(noColor),
	}
}

// FormatRequest formats a resolved request for display.
func (f *Formatter) FormatRequest(req *client.ResolvedRequest) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(req.Method),
		f.scheme.URL.Sprint(req.URL)))

	if f.Verbose || len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, key := range sortedKeys(req.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), req.Headers[key]))
		}
	}

	if req.Body != nil {
		buf.WriteString("  Body: ")
		buf.WriteString(formatBody(req.Body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display.
func (f *Formatter) FormatResponse(resp *client.Response, elapsed time.Duration) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.scheme.statusColor(resp.Status).Sprint(resp.StatusText),
		elapsed.Milliseconds()))

	if f.Verbose {
		buf.WriteString("  Headers:\n")
		for key, values := range resp.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	body, err := resp.Text()
	if err == nil && body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(indentJSON(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// formatBody renders a request body for display, pretty-printing JSON where
// possible.
func formatBody(body interface{}) string {
	switch b := body.(type) {
	case string:
		return indentJSON(b)
	case []byte:
		return indentJSON(string(b))
	case *client.FormData:
		parts := make([]string, len(b.Fields))
		for i, field := range b.Fields {
			parts[i] = fmt.Sprintf("%s=%s", field.Key, field.Value)
		}
		return "(multipart) " + strings.Join(parts, " ")
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return fmt.Sprintf("%v", b)
		}
		return indentJSON(string(encoded))
	}
}

// indentJSON attempts to pretty-print a JSON string, returning the input
// unchanged when it is not valid JSON.
func indentJSON(s string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return pretty.String()
}

// sortedKeys returns the map keys in sorted order for stable output.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
