package client

import (
	"net/http"
	"testing"
)

func TestResponse_Parsers(t *testing.T) {
	resp := NewResponse(200, "200 OK", http.Header{"Content-Type": []string{"application/json"}}, []byte(`{"a":1}`))

	parsed, err := resp.JSON()
	if err != nil {
		t.Fatalf("Error parsing JSON: %v", err)
	}
	if parsed.(map[string]interface{})["a"] != float64(1) {
		t.Errorf("Unexpected JSON value: %v", parsed)
	}

	text, _ := resp.Text()
	if text != `{"a":1}` {
		t.Errorf("Unexpected text: %s", text)
	}

	blob, _ := resp.Blob()
	if string(blob) != `{"a":1}` {
		t.Errorf("Unexpected blob: %s", blob)
	}

	if resp.GetHeader("Content-Type") != "application/json" {
		t.Errorf("Unexpected header: %s", resp.GetHeader("Content-Type"))
	}
}

func TestResponse_FormData(t *testing.T) {
	resp := NewResponse(200, "200 OK", nil, []byte("a=1&b=2"))

	values, err := resp.FormData()
	if err != nil {
		t.Fatalf("Error parsing form data: %v", err)
	}
	if values.Get("a") != "1" || values.Get("b") != "2" {
		t.Errorf("Unexpected form values: %v", values)
	}
}

func TestResponse_DecodeJSON(t *testing.T) {
	resp := NewResponse(200, "200 OK", nil, []byte(`{"name":"volley"}`))

	var v struct {
		Name string `json:"name"`
	}
	if err := resp.DecodeJSON(&v); err != nil {
		t.Fatalf("Error decoding JSON: %v", err)
	}
	if v.Name != "volley" {
		t.Errorf("Expected name volley, got %s", v.Name)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantEmpty bool
		wantErr   bool
	}{
		{"200 passes", 200, false, false},
		{"299 passes", 299, false, false},
		{"204 resolves empty", 204, true, false},
		{"301 fails", 301, false, true},
		{"404 fails", 404, false, true},
		{"500 fails", 500, false, true},
		{"199 fails", 199, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewResponse(tt.status, http.StatusText(tt.status), nil, nil)
			empty, err := checkStatus(resp)
			if empty != tt.wantEmpty {
				t.Errorf("Expected empty=%v, got %v", tt.wantEmpty, empty)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected err=%v, got %v", tt.wantErr, err)
			}
			if err != nil {
				if err.Kind != KindHTTPStatus {
					t.Errorf("Expected kind %s, got %s", KindHTTPStatus, err.Kind)
				}
				if err.Status != tt.status {
					t.Errorf("Expected status %d, got %d", tt.status, err.Status)
				}
				if err.Response != resp {
					t.Error("Expected raw response attached")
				}
			}
		})
	}
}

func TestParseResponse_UnknownTagReturnsRaw(t *testing.T) {
	resp := NewResponse(200, "200 OK", nil, []byte("x"))

	parsed, err := parseResponse(resp, "arrayBuffer", nil)
	if err != nil {
		t.Fatalf("Error parsing response: %v", err)
	}
	if parsed != resp {
		t.Errorf("Expected raw response for unknown tag, got %v", parsed)
	}
}
