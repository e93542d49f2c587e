package client

import (
	"strings"
	"time"
)

// CallOptions carries per-call overrides merged on top of the client's
// configuration. It is transient; the client never retains it.
type CallOptions struct {
	// Method overrides the configured HTTP method
	Method string

	// Data is the request payload, encoded according to the resolved
	// content type (or folded into the query string for GET calls)
	Data interface{}

	// Headers are per-call header overrides
	Headers map[string]string

	// Timeout overrides the configured timeout when positive
	Timeout time.Duration

	// Extra holds transport passthrough fields merged over the client's own
	Extra map[string]interface{}
}

// ResolvedRequest is the fully computed URL, headers, body, method, and
// timeout for one dispatch. It is derived once per call, immutable after
// resolution, and consumed exactly once by the transport.
type ResolvedRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    interface{}
	Timeout time.Duration
	Extra   map[string]interface{}
}

// configSnapshot is a copy of the client's configuration taken at dispatch
// time, so concurrent calls never observe each other's mutations.
type configSnapshot struct {
	method          string
	prefix          string
	timeout         time.Duration
	responseType    string
	headers         map[string]string
	extra           map[string]interface{}
	transport       Transport
	beforeRequest   BeforeRequestHook
	afterResponse   AfterResponseHook
	errorHandle     ErrorHook
	withHeaders     map[string]string
	withHeadersFunc HeaderHook
	headerFunc      HeaderHook
	parse           ParseFunc
}

// resolve merges the configuration snapshot with the call options into a
// ResolvedRequest. The snapshot's maps were copied when it was taken, so the
// resolver may mutate them freely.
func (s *configSnapshot) resolve(path string, opts *CallOptions) (*ResolvedRequest, error) {
	if opts == nil {
		opts = &CallOptions{}
	}

	method := s.method
	if opts.Method != "" {
		method = opts.Method
	}
	method = strings.ToUpper(method)

	timeout := s.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	headers := resolveHeaders(s.headers, opts.Headers, s.withHeaders, s.withHeadersFunc, s.headerFunc)

	extra := s.extra
	for key, value := range opts.Extra {
		extra[key] = value
	}

	target := composeURL(s.prefix, path)

	// A GET call never carries a body; its payload is folded into the query
	// string instead.
	var body interface{}
	if method == "GET" {
		if opts.Data != nil {
			target = appendQuery(target, encodeQuery(opts.Data))
		}
	} else {
		var err error
		body, err = encodeBody(opts.Data, headers)
		if err != nil {
			return nil, err
		}
	}

	return &ResolvedRequest{
		URL:     target,
		Method:  method,
		Headers: headers,
		Body:    body,
		Timeout: timeout,
		Extra:   extra,
	}, nil
}
