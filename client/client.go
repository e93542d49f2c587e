package client

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Client accumulates default options and dispatches HTTP calls through a
// resolution pipeline: configuration merge, header resolution, body encoding,
// URL composition, hooks, transport dispatch, response processing. All
// setters are chainable. Configuration is typically done during setup, but
// the client is safe for concurrent calls: each call works on a snapshot.
type Client struct {
	mu sync.RWMutex

	method       string
	prefix       string
	timeout      time.Duration
	responseType string
	headers      map[string]string
	extra        map[string]interface{}
	transport    Transport

	beforeRequest   BeforeRequestHook
	afterResponse   AfterResponseHook
	errorHandle     ErrorHook
	withHeaders     map[string]string
	withHeadersFunc HeaderHook
	headerFunc      HeaderHook
	parse           ParseFunc
}

// NewClient creates a client with the documented defaults: method POST,
// content-type application/json, response type json, no prefix, no timeout,
// and cors/no-cache/include passthrough options for the transport.
func NewClient() *Client {
	return &Client{
		method:       "POST",
		responseType: "json",
		headers: map[string]string{
			contentTypeKey: "application/json",
		},
		extra: map[string]interface{}{
			"mode":        "cors",
			"cache":       "no-cache",
			"credentials": "include",
		},
		transport: newHTTPTransport(),
	}
}

// Configure shallow-merges one option into the client; last write wins.
// Recognized keys (method, prefix, timeout, responseType, headers) update
// their typed fields; anything else is stored as a transport passthrough
// option.
func (c *Client) Configure(key string, value interface{}) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case "method":
		if s, ok := value.(string); ok {
			c.method = s
		}
	case "prefix":
		if s, ok := value.(string); ok {
			c.prefix = s
		}
	case "timeout":
		if d, ok := value.(time.Duration); ok && d > 0 {
			c.timeout = d
		}
	case "responseType":
		if s, ok := value.(string); ok {
			c.responseType = s
		}
	case "headers":
		if m, ok := value.(map[string]string); ok {
			mergeHeaders(c.headers, m)
		}
	default:
		c.extra[key] = value
	}
	return c
}

// ConfigureMap shallow-merges every entry of the given map.
func (c *Client) ConfigureMap(options map[string]interface{}) *Client {
	for key, value := range options {
		c.Configure(key, value)
	}
	return c
}

// SetPrefix sets the URL prefix joined in front of relative call targets.
func (c *Client) SetPrefix(prefix string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prefix = prefix
	return c
}

// SetTimeout sets the default call timeout. A timeout races the transport
// call against a timer; losing the race does not cancel the underlying call,
// it only stops waiting for it. Non-positive durations are ignored.
func (c *Client) SetTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
	return c
}

// SetTransport replaces the underlying network transport. Nil is ignored.
func (c *Client) SetTransport(transport Transport) *Client {
	if transport == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transport = transport
	return c
}

// OnBeforeRequest registers the pre-dispatch veto hook. Nil is a no-op.
func (c *Client) OnBeforeRequest(hook BeforeRequestHook) *Client {
	if hook == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.beforeRequest = hook
	return c
}

// OnAfterResponse registers the post-parse transform hook. Nil is a no-op.
func (c *Client) OnAfterResponse(hook AfterResponseHook) *Client {
	if hook == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResponse = hook
	return c
}

// OnError registers the terminal error hook. Nil is a no-op.
func (c *Client) OnError(hook ErrorHook) *Client {
	if hook == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorHandle = hook
	return c
}

// WithHeaders registers a literal header map merged into every call's
// resolved headers, above the base headers and below the header-func hook.
func (c *Client) WithHeaders(headers map[string]string) *Client {
	if headers == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.withHeaders = normalizeHeaders(headers)
	return c
}

// WithHeadersFunc registers a callable variant of WithHeaders, invoked once
// per call. When both are set the callable wins.
func (c *Client) WithHeadersFunc(hook HeaderHook) *Client {
	if hook == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.withHeadersFunc = hook
	return c
}

// WithResponseParser registers a custom parse hook receiving the raw response
// and the declared response-type tag. Nil is a no-op.
func (c *Client) WithResponseParser(parse ParseFunc) *Client {
	if parse == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parse = parse
	return c
}

// Header sets one default header. Keys are normalized to lowercase before
// storage.
func (c *Client) Header(key, value string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[strings.ToLower(key)] = value
	return c
}

// Headers merges a map of default headers, normalizing keys to lowercase.
func (c *Client) Headers(headers map[string]string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	mergeHeaders(c.headers, headers)
	return c
}

// HeaderFunc registers a per-call header generator whose entries take the
// highest precedence during header resolution. It is kept apart from the
// literal header map, never inside it.
func (c *Client) HeaderFunc(hook HeaderHook) *Client {
	if hook == nil {
		return c
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headerFunc = hook
	return c
}

// ContentType sets the content-type header from a short alias (json, form,
// urlencoded, multipart). Unrecognized aliases are stored verbatim.
func (c *Client) ContentType(alias string) *Client {
	contentType, ok := contentTypeAliases[alias]
	if !ok {
		contentType = alias
	}
	return c.Header(contentTypeKey, contentType)
}

// snapshot copies the configuration under the read lock so in-flight calls
// never alias the live maps.
func (c *Client) snapshot() *configSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	headers := make(map[string]string, len(c.headers))
	for key, value := range c.headers {
		headers[key] = value
	}
	extra := make(map[string]interface{}, len(c.extra))
	for key, value := range c.extra {
		extra[key] = value
	}

	return &configSnapshot{
		method:          c.method,
		prefix:          c.prefix,
		timeout:         c.timeout,
		responseType:    c.responseType,
		headers:         headers,
		extra:           extra,
		transport:       c.transport,
		beforeRequest:   c.beforeRequest,
		afterResponse:   c.afterResponse,
		errorHandle:     c.errorHandle,
		withHeaders:     c.withHeaders,
		withHeadersFunc: c.withHeadersFunc,
		headerFunc:      c.headerFunc,
		parse:           c.parse,
	}
}

// Send resolves and executes one call, returning the parsed response value.
// Every failure is funneled through the error hook; a hook returning false
// swallows the failure and Send returns neither a value nor an error.
func (c *Client) Send(ctx context.Context, target string, opts *CallOptions) (interface{}, error) {
	snap := c.snapshot()

	info := CallInfo{
		Prefix: snap.prefix,
		Path:   target,
	}

	if target == "" {
		return fail(snap, newError(KindInvalidURL, "call target must be a non-empty URL"), info)
	}

	req, err := snap.resolve(target, opts)
	if err != nil {
		return fail(snap, err, info)
	}
	info.Request = req

	// The request is fully resolved before the hook runs; the hook observes
	// it and may only veto.
	if snap.beforeRequest != nil && !snap.beforeRequest(req.URL, req) {
		return fail(snap, newError(KindRequestCanceled, "request canceled by before-request hook"), info)
	}

	resp, err := invoke(ctx, snap.transport, req.URL, req)
	if err != nil {
		return fail(snap, err, info)
	}

	empty, serr := checkStatus(resp)
	if serr != nil {
		return fail(snap, serr, info)
	}

	var parsed interface{}
	if !empty {
		parsed, err = parseResponse(resp, snap.responseType, snap.parse)
		if err != nil {
			return fail(snap, err, info)
		}
	}

	if snap.afterResponse != nil {
		parsed = snap.afterResponse(parsed, info)
	}
	return parsed, nil
}

// fail normalizes the error and applies the error hook. A hook returning
// false suppresses the failure entirely.
func fail(snap *configSnapshot, err error, info CallInfo) (interface{}, error) {
	rerr := normalizeError(err)
	if snap.errorHandle != nil && !snap.errorHandle(rerr, info) {
		return nil, nil
	}
	return nil, rerr
}

// withMethod copies the call options with the method forced, leaving the
// caller's options untouched.
func withMethod(opts *CallOptions, method string, data interface{}) *CallOptions {
	merged := CallOptions{}
	if opts != nil {
		merged = *opts
	}
	merged.Method = method
	if data != nil {
		merged.Data = data
	}
	return &merged
}

// Get executes a GET call. Any payload is encoded into the query string.
func (c *Client) Get(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "GET", data))
}

// Post executes a POST call.
func (c *Client) Post(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "POST", data))
}

// Head executes a HEAD call.
func (c *Client) Head(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "HEAD", data))
}

// Delete executes a DELETE call.
func (c *Client) Delete(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "DELETE", data))
}

// Options executes an OPTIONS call.
func (c *Client) Options(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "OPTIONS", data))
}

// Put executes a PUT call.
func (c *Client) Put(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "PUT", data))
}

// Patch executes a PATCH call.
func (c *Client) Patch(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withMethod(opts, "PATCH", data))
}

// GetForm executes a GET call with the urlencoded content type forced.
func (c *Client) GetForm(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withFormContentType(withMethod(opts, "GET", data)))
}

// PostForm executes a POST call with the urlencoded content type forced.
func (c *Client) PostForm(ctx context.Context, target string, data interface{}, opts *CallOptions) (interface{}, error) {
	return c.Send(ctx, target, withFormContentType(withMethod(opts, "POST", data)))
}

// withFormContentType forces the urlencoded content type as a per-call header
// override.
func withFormContentType(opts *CallOptions) *CallOptions {
	headers := make(map[string]string, len(opts.Headers)+1)
	for key, value := range opts.Headers {
		headers[key] = value
	}
	headers[contentTypeKey] = contentTypeAliases["form"]
	opts.Headers = headers
	return opts
}
