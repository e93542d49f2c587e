package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// FormField is one key/value entry of a multipart form.
type FormField struct {
	Key   string
	Value string
}

// FormData is an append-style multipart form payload. The transport builds
// the wire encoding (and its boundary) from it at dispatch time.
type FormData struct {
	Fields []FormField
}

// NewFormData creates an empty multipart form payload.
func NewFormData() *FormData {
	return &FormData{}
}

// Append adds a key/value pair to the form and returns it for chaining.
func (f *FormData) Append(key, value string) *FormData {
	f.Fields = append(f.Fields, FormField{Key: key, Value: value})
	return f
}

// encodeQuery serializes a data payload into a URL query string. Map keys are
// encoded in sorted order so output is deterministic.
func encodeQuery(data interface{}) string {
	values := url.Values{}

	switch d := data.(type) {
	case url.Values:
		return d.Encode()
	case map[string]string:
		for key, value := range d {
			values.Set(key, value)
		}
	case map[string]interface{}:
		for key, value := range d {
			values.Set(key, fmt.Sprint(value))
		}
	default:
		return fmt.Sprint(data)
	}

	return values.Encode()
}

// mapToForm converts a plain map payload into a multipart form, appending
// entries in sorted key order.
func mapToForm(data map[string]interface{}) *FormData {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	form := NewFormData()
	for _, key := range keys {
		form.Append(key, fmt.Sprint(data[key]))
	}
	return form
}

// encodeBody serializes the data payload according to the resolved content
// type, mutating headers where the encoding demands it. At most one branch
// applies. GET calls never reach this function; their payload is folded into
// the query string instead.
func encodeBody(data interface{}, headers map[string]string) (interface{}, error) {
	if data == nil {
		return nil, nil
	}

	contentType := headers[contentTypeKey]

	switch {
	case strings.Contains(contentType, "multipart/form-data") || isFormData(data):
		var form *FormData
		switch d := data.(type) {
		case *FormData:
			form = d
		case map[string]interface{}:
			form = mapToForm(d)
		case map[string]string:
			m := make(map[string]interface{}, len(d))
			for key, value := range d {
				m[key] = value
			}
			form = mapToForm(m)
		default:
			return nil, newError(KindNetwork, "cannot build multipart form from %T", data)
		}
		// The transport must compute its own boundary parameter, so the
		// content-type header is removed entirely.
		delete(headers, contentTypeKey)
		return form, nil

	case strings.Contains(contentType, "application/json"):
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		return string(encoded), nil

	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return encodeQuery(data), nil

	default:
		return data, nil
	}
}

// isFormData reports whether the payload is already a multipart-form value.
func isFormData(data interface{}) bool {
	_, ok := data.(*FormData)
	return ok
}
