package output

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/volley-http/volley/client"
)

// Format represents the available output formats
type Format string

const (
	// FormatText is the default human-readable text format
	FormatText Format = "text"
	// FormatJSON outputs structured JSON
	FormatJSON Format = "json"
	// FormatYAML outputs structured YAML
	FormatYAML Format = "yaml"
)

// Provider is the interface all output formatters implement.
type Provider interface {
	FormatRequest(req *client.ResolvedRequest) string
	FormatResponse(resp *client.Response, elapsed time.Duration) string
}

// RequestData is the structured rendering of a dispatched request.
type RequestData struct {
	Method    string            `json:"method" yaml:"method"`
	URL       string            `json:"url" yaml:"url"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body      interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
}

// ResponseData is the structured rendering of a received response.
type ResponseData struct {
	StatusCode   int               `json:"statusCode" yaml:"statusCode"`
	Status       string            `json:"status" yaml:"status"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body         interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	ResponseTime int64             `json:"responseTimeMs" yaml:"responseTimeMs"`
	Timestamp    string            `json:"timestamp" yaml:"timestamp"`
}

// newRequestData converts a resolved request into its structured rendering.
func newRequestData(req *client.ResolvedRequest) RequestData {
	return RequestData{
		Method:    req.Method,
		URL:       req.URL,
		Headers:   req.Headers,
		Body:      req.Body,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// newResponseData converts a response into its structured rendering. JSON
// bodies are embedded as structured values, everything else as a string.
func newResponseData(resp *client.Response, elapsed time.Duration) ResponseData {
	headers := make(map[string]string)
	for key, values := range resp.Headers {
		if len(values) > 0 {
			headers[key] = values[0]
		}
	}

	var body interface{}
	if text, err := resp.Text(); err == nil && text != "" {
		if err := json.Unmarshal([]byte(text), &body); err != nil {
			body = text
		}
	}

	return ResponseData{
		StatusCode:   resp.Status,
		Status:       resp.StatusText,
		Headers:      headers,
		Body:         body,
		ResponseTime: elapsed.Milliseconds(),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Pretty bool
}

// FormatRequest formats a request as JSON.
func (f *JSONFormatter) FormatRequest(req *client.ResolvedRequest) string {
	return f.marshal(newRequestData(req))
}

// FormatResponse formats a response as JSON.
func (f *JSONFormatter) FormatResponse(resp *client.Response, elapsed time.Duration) string {
	return f.marshal(newResponseData(resp, elapsed))
}

func (f *JSONFormatter) marshal(data interface{}) string {
	var output []byte
	var err error
	if f.Pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(output)
}

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// FormatRequest formats a request as YAML.
func (f *YAMLFormatter) FormatRequest(req *client.ResolvedRequest) string {
	return marshalYAML(newRequestData(req))
}

// FormatResponse formats a response as YAML.
func (f *YAMLFormatter) FormatResponse(resp *client.Response, elapsed time.Duration) string {
	return marshalYAML(newResponseData(resp, elapsed))
}

func marshalYAML(data interface{}) string {
	output, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("error: %s\n", err)
	}
	return string(output)
}

// GetFormatter returns the formatter for the given format, falling back to
// text.
func GetFormatter(format Format, verbose, noColor bool) Provider {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return NewFormatter(verbose, noColor)
	}
}
