package client

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// Response represents an HTTP response with its body already read. Parser
// methods are keyed by response-type name: json, text, blob, formData.
type Response struct {
	Status     int
	StatusText string
	Headers    http.Header
	body       []byte
}

// NewResponse creates a Response from already-read body bytes. Transports use
// this to assemble their result.
func NewResponse(status int, statusText string, headers http.Header, body []byte) *Response {
	return &Response{
		Status:     status,
		StatusText: statusText,
		Headers:    headers,
		body:       body,
	}
}

// JSON parses the body as JSON into a generic value.
func (r *Response) JSON() (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal(r.body, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeJSON unmarshals the body into the provided value.
func (r *Response) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.body, v)
}

// Text returns the body as a string.
func (r *Response) Text() (string, error) {
	return string(r.body), nil
}

// Blob returns the raw body bytes.
func (r *Response) Blob() ([]byte, error) {
	return r.body, nil
}

// FormData parses the body as URL-encoded form data.
func (r *Response) FormData() (url.Values, error) {
	return url.ParseQuery(string(r.body))
}

// GetHeader returns the value of the specified header.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// checkStatus gates the response on its HTTP status. Statuses in [200,300)
// pass; 204 short-circuits to an empty parsed value; anything else raises an
// HTTPStatusError carrying the status code and the raw response.
func checkStatus(resp *Response) (empty bool, err *RequestError) {
	if resp.Status == http.StatusNoContent {
		return true, nil
	}
	if resp.IsSuccess() {
		return false, nil
	}
	return false, &RequestError{
		Kind:     KindHTTPStatus,
		Message:  resp.StatusText,
		Status:   resp.Status,
		Response: resp,
	}
}

// parseResponse applies the custom parse hook if configured; otherwise it
// dispatches on the response-type tag. Unknown tags return the raw response
// unchanged.
func parseResponse(resp *Response, responseType string, parse ParseFunc) (interface{}, error) {
	if parse != nil {
		return parse(resp, responseType)
	}

	switch responseType {
	case "json":
		return resp.JSON()
	case "text":
		return resp.Text()
	case "blob":
		return resp.Blob()
	case "formData":
		return resp.FormData()
	default:
		return resp, nil
	}
}
