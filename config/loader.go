package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level collection file structure.
type Config struct {
	// Environments defines target environments with base URLs and default headers
	Environments map[string]Environment `json:"environments" yaml:"environments"`

	// Requests defines HTTP request templates
	Requests map[string]Request `json:"requests" yaml:"requests"`

	// Suites defines collections of requests to run together
	Suites map[string]Suite `json:"suites" yaml:"suites"`

	// Schemas defines JSON schemas for response validation
	Schemas map[string]interface{} `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// Environment represents an environment configuration with base URL and headers.
type Environment struct {
	// BaseURL is the base URL for all requests in this environment
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Headers are default headers added to all requests in this environment
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// Vars are variables that can be used in request templates
	Vars map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Request represents an HTTP request template.
type Request struct {
	// URL is the request URL (can include {{variables}})
	URL string `json:"url" yaml:"url"`

	// Method is the HTTP method (GET, POST, PUT, DELETE, etc.)
	Method string `json:"method" yaml:"method"`

	// Headers are request-specific headers
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	// QueryParams are URL query parameters
	QueryParams map[string]string `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`

	// Body is the request body (can be any JSON value)
	Body interface{} `json:"body,omitempty" yaml:"body,omitempty"`

	// Timeout is an optional per-request timeout ("5s", "500ms")
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// Extract defines variables to extract from the response via JSONPath
	Extract map[string]string `json:"extract,omitempty" yaml:"extract,omitempty"`

	// Schema names a schema from the Schemas section to validate the response against
	Schema string `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Suite represents a collection of requests to run in order.
type Suite struct {
	// Requests is the list of request names to run in order
	Requests []string `json:"requests" yaml:"requests"`

	// Vars are variables available to all requests in the suite
	Vars map[string]string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// Load loads a collection file from the given path. Files ending in .yaml or
// .yml are parsed as YAML; everything else is parsed as JSON.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	return &config, nil
}

// SchemaJSON returns the named schema re-encoded as a JSON string for the
// schema validator.
func (c *Config) SchemaJSON(name string) (string, error) {
	schema, ok := c.Schemas[name]
	if !ok {
		return "", fmt.Errorf("schema not found: %s", name)
	}
	data, err := json.Marshal(normalizeYAML(schema))
	if err != nil {
		return "", fmt.Errorf("error encoding schema %s: %w", name, err)
	}
	return string(data), nil
}

// normalizeYAML converts YAML's map[interface{}]interface{} shapes into the
// map[string]interface{} shapes encoding/json can marshal.
func normalizeYAML(v interface{}) interface{} {
	switch value := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(value))
		for key, item := range value {
			m[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(value))
		for key, item := range value {
			m[key] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(value))
		for i, item := range value {
			s[i] = normalizeYAML(item)
		}
		return s
	default:
		return v
	}
}

// ProcessEnvironment processes variable substitution in a string. Variables
// are specified using the {{variableName}} syntax.
func ProcessEnvironment(input string, env map[string]string) string {
	result := input

	for key, value := range env {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}

	return result
}

// ProcessEnvironmentInMap processes variable substitution in a map of strings.
func ProcessEnvironmentInMap(input map[string]string, env map[string]string) map[string]string {
	result := make(map[string]string)

	for key, value := range input {
		result[key] = ProcessEnvironment(value, env)
	}

	return result
}

// MergeEnvironments merges two variable sets, with the override taking
// precedence.
func MergeEnvironments(base, override map[string]string) map[string]string {
	result := make(map[string]string)

	for key, value := range base {
		result[key] = value
	}

	for key, value := range override {
		result[key] = value
	}

	return result
}
