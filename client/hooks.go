package client

// BeforeRequestHook is invoked synchronously just before dispatch with the
// fully resolved URL and request. Returning false aborts the call before any
// transport invocation; the hook cannot mutate the resolved request.
type BeforeRequestHook func(url string, req *ResolvedRequest) bool

// AfterResponseHook is invoked after successful parsing. Its return value
// becomes the call's result.
type AfterResponseHook func(parsed interface{}, info CallInfo) interface{}

// ErrorHook is invoked for any failure reaching the terminal stage. Returning
// false swallows the failure: the call returns neither a value nor an error.
type ErrorHook func(err *RequestError, info CallInfo) bool

// HeaderHook returns headers to merge into the resolved header map. It runs
// once per call, after all other header sources, so its entries take the
// highest precedence.
type HeaderHook func() map[string]string

// ParseFunc overrides the default response parsing. It receives the raw
// response and the declared response-type tag.
type ParseFunc func(resp *Response, responseType string) (interface{}, error)

// CallInfo carries the composed prefix, the original path, and the dispatched
// request to the after-response and error hooks.
type CallInfo struct {
	Prefix  string
	Path    string
	Request *ResolvedRequest
}
