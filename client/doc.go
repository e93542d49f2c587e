// Package client provides a configurable HTTP request builder: a fluent
// client that accumulates default and per-call options, resolves headers,
// encodes request bodies by content type, composes final URLs, and drives a
// pre-request / dispatch / post-response pipeline around a pluggable
// transport.
//
// This package provides:
//   - A chainable configuration surface (headers, prefix, timeout, hooks)
//   - Content-type-driven body encoding (JSON, urlencoded, multipart)
//   - Per-verb call methods plus a generic Send
//   - A before-request veto hook, an after-response transform, and an
//     error-suppression hook
//   - Best-effort timeouts raced against the transport call
//
// Basic Usage:
//
//	c := client.NewClient().
//	    SetPrefix("https://api.example.com").
//	    SetTimeout(30 * time.Second).
//	    Header("authorization", "Bearer token")
//
//	users, err := c.Get(context.Background(), "/users", map[string]interface{}{
//	    "limit": 10,
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Hook Example:
//
//	c := client.NewClient().
//	    OnBeforeRequest(func(url string, req *client.ResolvedRequest) bool {
//	        return strings.HasPrefix(url, "https://") // veto plain http
//	    }).
//	    OnError(func(err *client.RequestError, info client.CallInfo) bool {
//	        fmt.Fprintf(os.Stderr, "call to %s failed: %v\n", info.Path, err)
//	        return true // keep surfacing the error
//	    })
//
// Thread Safety:
//
// Client is safe for concurrent use. Each call resolves a private snapshot of
// the configuration, so concurrent calls never observe each other's in-flight
// mutations.
package client
