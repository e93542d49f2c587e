package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestRequestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RequestError
		contains []string
	}{
		{
			name:     "Status error includes code",
			err:      &RequestError{Kind: KindHTTPStatus, Message: "404 Not Found", Status: 404},
			contains: []string{"HTTPStatusError", "404"},
		},
		{
			name:     "Wrapped cause is rendered",
			err:      &RequestError{Kind: KindNetwork, Message: "dial failed", Cause: errors.New("connection refused")},
			contains: []string{"NetworkError", "connection refused"},
		},
		{
			name:     "Plain error",
			err:      &RequestError{Kind: KindRequestCanceled, Message: "canceled"},
			contains: []string{"RequestCanceled", "canceled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Expected %q in %q", want, msg)
				}
			}
		})
	}
}

func TestRequestError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &RequestError{Kind: KindTimeout, Message: "request timed out after 10ms"})

	if !errors.Is(err, &RequestError{Kind: KindTimeout}) {
		t.Error("Expected errors.Is to match on kind")
	}
	if errors.Is(err, &RequestError{Kind: KindNetwork}) {
		t.Error("Expected errors.Is to reject a different kind")
	}
}

func TestRequestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &RequestError{Kind: KindNetwork, Message: "transport failed", Cause: cause}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

func TestNormalizeError(t *testing.T) {
	rerr := &RequestError{Kind: KindTimeout, Message: "request timed out after 5ms"}
	if normalizeError(rerr) != rerr {
		t.Error("Expected RequestError to pass through normalization")
	}

	plain := errors.New("socket closed")
	normalized := normalizeError(plain)
	if normalized.Kind != KindNetwork {
		t.Errorf("Expected stray errors to normalize to %s, got %s", KindNetwork, normalized.Kind)
	}
	if normalized.Status != 0 {
		t.Errorf("Expected status 0 for normalized errors, got %d", normalized.Status)
	}
	if !errors.Is(normalized, plain) {
		t.Error("Expected the original error to remain reachable via Unwrap")
	}

	if normalizeError(nil) != nil {
		t.Error("Expected nil to normalize to nil")
	}
}
