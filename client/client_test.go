package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_GetFoldsDataIntoQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		if r.URL.RawQuery != "a=1&b=2" {
			t.Errorf("Expected query a=1&b=2, got %s", r.URL.RawQuery)
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) != 0 {
			t.Errorf("Expected no body on GET, got %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL)

	parsed, err := c.Get(context.Background(), "/items", map[string]interface{}{"a": 1, "b": 2}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	result, ok := parsed.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected parsed JSON map, got %T", parsed)
	}
	if result["ok"] != true {
		t.Errorf("Expected ok=true, got %v", result["ok"])
	}
}

func TestClient_PostEncodesJSONOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"x":1}` {
			t.Errorf("Expected body {\"x\":1}, got %s", body)
		}
		w.Write([]byte(`{"id":7}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL)

	parsed, err := c.Post(context.Background(), "/items", map[string]interface{}{"x": 1}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	result := parsed.(map[string]interface{})
	if result["id"] != float64(7) {
		t.Errorf("Expected id=7, got %v", result["id"])
	}
}

func TestClient_MultipartBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
			t.Errorf("Expected multipart content type with boundary, got %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Error parsing multipart form: %v", err)
		}
		if r.FormValue("name") != "report" || r.FormValue("kind") != "pdf" {
			t.Errorf("Unexpected form values: %v", r.MultipartForm.Value)
		}
		w.Write([]byte(`{"stored":true}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL).ContentType("multipart")

	_, err := c.Post(context.Background(), "/upload", map[string]interface{}{
		"name": "report",
		"kind": "pdf",
	}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
}

func TestClient_MultipartRemovesContentTypeFromResolvedHeaders(t *testing.T) {
	var dispatched *ResolvedRequest
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		dispatched = req
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().SetTransport(stub).ContentType("multipart")

	_, err := c.Post(context.Background(), "/upload", map[string]string{"k": "v"}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if _, present := dispatched.Headers[contentTypeKey]; present {
		t.Errorf("Expected content-type absent from dispatched headers, got %q", dispatched.Headers[contentTypeKey])
	}
	form, ok := dispatched.Body.(*FormData)
	if !ok {
		t.Fatalf("Expected *FormData body, got %T", dispatched.Body)
	}
	if len(form.Fields) != 1 || form.Fields[0].Key != "k" {
		t.Errorf("Unexpected form fields: %v", form.Fields)
	}
}

func TestClient_PostForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
			t.Errorf("Expected urlencoded content type, got %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "a=1&b=2" {
			t.Errorf("Expected body a=1&b=2, got %s", body)
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL)

	_, err := c.PostForm(context.Background(), "/login", map[string]string{"a": "1", "b": "2"}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
}

func TestClient_NoContentResolvesEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL)

	parsed, err := c.Delete(context.Background(), "/items/1", nil, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if parsed != nil {
		t.Errorf("Expected empty value for 204, got %v", parsed)
	}
}

func TestClient_StatusErrorCarriesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"missing"}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL)

	_, err := c.Get(context.Background(), "/items/999", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}

	rerr, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("Expected *RequestError, got %T", err)
	}
	if rerr.Kind != KindHTTPStatus {
		t.Errorf("Expected kind %s, got %s", KindHTTPStatus, rerr.Kind)
	}
	if rerr.Status != 404 {
		t.Errorf("Expected status 404, got %d", rerr.Status)
	}
	if rerr.Response == nil {
		t.Fatal("Expected raw response attached to error")
	}
	text, _ := rerr.Response.Text()
	if text != `{"error":"missing"}` {
		t.Errorf("Expected raw body attached, got %s", text)
	}
}

func TestClient_BeforeRequestVeto(t *testing.T) {
	invoked := false
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		invoked = true
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().
		SetTransport(stub).
		OnBeforeRequest(func(url string, req *ResolvedRequest) bool {
			return false
		})

	_, err := c.Post(context.Background(), "/x", nil, nil)
	if err == nil {
		t.Fatal("Expected error when hook vetoes the call")
	}
	rerr := err.(*RequestError)
	if rerr.Kind != KindRequestCanceled {
		t.Errorf("Expected kind %s, got %s", KindRequestCanceled, rerr.Kind)
	}
	if invoked {
		t.Error("Expected transport to never be invoked after veto")
	}
}

func TestClient_BeforeRequestObservesResolvedRequest(t *testing.T) {
	var observed *ResolvedRequest
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().
		SetTransport(stub).
		SetPrefix("https://api.example.com").
		OnBeforeRequest(func(url string, req *ResolvedRequest) bool {
			observed = req
			return true
		})

	_, err := c.Post(context.Background(), "/x", map[string]interface{}{"x": 1}, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if observed == nil {
		t.Fatal("Expected hook to observe the resolved request")
	}
	if observed.URL != "https://api.example.com/x" {
		t.Errorf("Expected fully composed URL, got %s", observed.URL)
	}
	if observed.Body != `{"x":1}` {
		t.Errorf("Expected encoded body, got %v", observed.Body)
	}
}

func TestClient_TimeoutWinsRace(t *testing.T) {
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		time.Sleep(500 * time.Millisecond) // never settles within the window
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().
		SetTransport(stub).
		SetTimeout(10 * time.Millisecond)

	start := time.Now()
	_, err := c.Post(context.Background(), "/slow", nil, nil)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Expected timeout error")
	}
	rerr := err.(*RequestError)
	if rerr.Kind != KindTimeout {
		t.Errorf("Expected kind %s, got %s", KindTimeout, rerr.Kind)
	}
	if !strings.Contains(rerr.Message, "10ms") {
		t.Errorf("Expected message to contain the configured duration, got %q", rerr.Message)
	}
	if elapsed > 250*time.Millisecond {
		t.Errorf("Expected call to give up near the timeout, took %v", elapsed)
	}
}

func TestClient_PerCallTimeoutOverride(t *testing.T) {
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().SetTransport(stub).SetTimeout(time.Second)

	var seen time.Duration
	c.OnBeforeRequest(func(url string, req *ResolvedRequest) bool {
		seen = req.Timeout
		return true
	})

	_, err := c.Post(context.Background(), "/x", nil, &CallOptions{Timeout: 25 * time.Millisecond})
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if seen != 25*time.Millisecond {
		t.Errorf("Expected per-call timeout override, got %v", seen)
	}
}

func TestClient_ErrorHookSuppression(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var handled *RequestError
	c := NewClient().
		SetPrefix(server.URL).
		OnError(func(err *RequestError, info CallInfo) bool {
			handled = err
			return false // swallow the failure
		})

	parsed, err := c.Get(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("Expected suppressed error, got %v", err)
	}
	if parsed != nil {
		t.Errorf("Expected no value for suppressed failure, got %v", parsed)
	}
	if handled == nil || handled.Status != 500 {
		t.Errorf("Expected hook to receive the status error, got %v", handled)
	}
}

func TestClient_ErrorHookPassthrough(t *testing.T) {
	c := NewClient().
		SetTransport(TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
			return nil, errors.New("connection refused")
		})).
		OnError(func(err *RequestError, info CallInfo) bool {
			return true
		})

	_, err := c.Post(context.Background(), "/x", nil, nil)
	if err == nil {
		t.Fatal("Expected network error to surface")
	}
	rerr := err.(*RequestError)
	if rerr.Kind != KindNetwork {
		t.Errorf("Expected kind %s, got %s", KindNetwork, rerr.Kind)
	}
}

func TestClient_AfterResponseTransform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":41}`))
	}))
	defer server.Close()

	c := NewClient().
		SetPrefix(server.URL).
		OnAfterResponse(func(parsed interface{}, info CallInfo) interface{} {
			result := parsed.(map[string]interface{})
			return result["value"].(float64) + 1
		})

	parsed, err := c.Get(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if parsed != float64(42) {
		t.Errorf("Expected transformed value 42, got %v", parsed)
	}
}

func TestClient_HeaderFuncTakesPrecedence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			t.Errorf("Expected header func to win, got %s", r.Header.Get("Authorization"))
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient().
		SetPrefix(server.URL).
		Header("authorization", "Bearer stale").
		HeaderFunc(func() map[string]string {
			return map[string]string{"authorization": "Bearer fresh"}
		})

	if _, err := c.Get(context.Background(), "/x", nil, nil); err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
}

func TestClient_CustomParser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	c := NewClient().
		SetPrefix(server.URL).
		WithResponseParser(func(resp *Response, responseType string) (interface{}, error) {
			if responseType != "json" {
				t.Errorf("Expected declared response type to be passed, got %s", responseType)
			}
			text, err := resp.Text()
			return "parsed:" + text, err
		})

	parsed, err := c.Get(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if parsed != "parsed:hello" {
		t.Errorf("Expected custom parser result, got %v", parsed)
	}
}

func TestClient_ResponseTypeText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain body"))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL).Configure("responseType", "text")

	parsed, err := c.Get(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if parsed != "plain body" {
		t.Errorf("Expected text body, got %v", parsed)
	}
}

func TestClient_UnknownResponseTypeReturnsRawResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("raw"))
	}))
	defer server.Close()

	c := NewClient().SetPrefix(server.URL).Configure("responseType", "raw")

	parsed, err := c.Get(context.Background(), "/x", nil, nil)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	resp, ok := parsed.(*Response)
	if !ok {
		t.Fatalf("Expected raw *Response, got %T", parsed)
	}
	if text, _ := resp.Text(); text != "raw" {
		t.Errorf("Expected raw body, got %s", text)
	}
}

func TestClient_EmptyTargetIsInvalidURL(t *testing.T) {
	c := NewClient()

	_, err := c.Post(context.Background(), "", nil, nil)
	if err == nil {
		t.Fatal("Expected error for empty target")
	}
	rerr := err.(*RequestError)
	if rerr.Kind != KindInvalidURL {
		t.Errorf("Expected kind %s, got %s", KindInvalidURL, rerr.Kind)
	}
}

func TestClient_AbsoluteURLIgnoresPrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient().SetPrefix("https://unreachable.invalid")

	if _, err := c.Get(context.Background(), server.URL+"/x", nil, nil); err != nil {
		t.Fatalf("Expected absolute URL to bypass prefix, got %v", err)
	}
}

func TestClient_DefaultsAndConfigure(t *testing.T) {
	c := NewClient()
	snap := c.snapshot()

	if snap.method != "POST" {
		t.Errorf("Expected default method POST, got %s", snap.method)
	}
	if snap.responseType != "json" {
		t.Errorf("Expected default response type json, got %s", snap.responseType)
	}
	if snap.headers[contentTypeKey] != "application/json" {
		t.Errorf("Expected default content-type application/json, got %s", snap.headers[contentTypeKey])
	}
	if snap.extra["mode"] != "cors" || snap.extra["cache"] != "no-cache" || snap.extra["credentials"] != "include" {
		t.Errorf("Unexpected passthrough defaults: %v", snap.extra)
	}

	c.ConfigureMap(map[string]interface{}{
		"method":   "PUT",
		"prefix":   "https://api.example.com",
		"redirect": "follow",
	})
	snap = c.snapshot()
	if snap.method != "PUT" {
		t.Errorf("Expected configured method PUT, got %s", snap.method)
	}
	if snap.prefix != "https://api.example.com" {
		t.Errorf("Expected configured prefix, got %s", snap.prefix)
	}
	if snap.extra["redirect"] != "follow" {
		t.Errorf("Expected unrecognized key in passthrough options, got %v", snap.extra)
	}
}

func TestClient_SettersIgnoreBadArguments(t *testing.T) {
	c := NewClient()
	c.SetTimeout(-1)
	c.OnBeforeRequest(nil)
	c.OnError(nil)
	c.WithResponseParser(nil)

	snap := c.snapshot()
	if snap.timeout != 0 {
		t.Errorf("Expected negative timeout to be ignored, got %v", snap.timeout)
	}
	if snap.beforeRequest != nil || snap.errorHandle != nil || snap.parse != nil {
		t.Error("Expected nil hooks to be no-ops")
	}
}

func TestClient_SnapshotIsolation(t *testing.T) {
	started := make(chan struct{})
	blocker := make(chan struct{})
	var dispatched *ResolvedRequest
	stub := TransportFunc(func(ctx context.Context, url string, req *ResolvedRequest) (*Response, error) {
		close(started)
		<-blocker
		dispatched = req
		return NewResponse(200, "200 OK", nil, []byte(`{}`)), nil
	})

	c := NewClient().SetTransport(stub).Header("x-token", "before")

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Post(context.Background(), "/x", nil, nil)
	}()

	// Mutating the client mid-flight must not affect the in-flight snapshot.
	<-started
	c.Header("x-token", "after")
	close(blocker)
	<-done

	if dispatched.Headers["x-token"] != "before" {
		t.Errorf("Expected in-flight call to keep its snapshot, got %s", dispatched.Headers["x-token"])
	}
}
