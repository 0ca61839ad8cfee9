package documents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func shortRetries(t *testing.T) {
	t.Helper()
	prev := baseRetryDelay
	baseRetryDelay = 5 * time.Millisecond
	t.Cleanup(func() { baseRetryDelay = prev })
}

func TestIsThrottled(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"429 status", &StatusError{StatusCode: http.StatusTooManyRequests, Status: "429 Too Many Requests"}, true},
		{"503 status", &StatusError{StatusCode: http.StatusServiceUnavailable, Status: "503 Service Unavailable"}, true},
		{"404 status", &StatusError{StatusCode: http.StatusNotFound, Status: "404 Not Found"}, false},
		{"wrapped 429", fmt.Errorf("download: %w", &StatusError{StatusCode: http.StatusTooManyRequests}), true},
		{"zotero text", errors.New("zotero: 429 Too Many Requests"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isThrottled(tt.err); got != tt.want {
				t.Errorf("isThrottled(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestFromURL_RetriesThrottled(t *testing.T) {
	shortRetries(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.7"))
	}))
	defer srv.Close()

	c, err := FromURL(context.Background(), srv.URL+"/a.pdf")
	if err != nil {
		t.Fatalf("Expected success after retry, got: %v", err)
	}
	if c.MediaType != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", c.MediaType)
	}
	if n := calls.Load(); n != 3 {
		t.Errorf("Expected 3 calls, got %d", n)
	}
}

func TestFromURL_DoesNotRetryOtherStatus(t *testing.T) {
	shortRetries(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FromURL(context.Background(), srv.URL+"/missing.pdf")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Expected *StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", se.StatusCode)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("Expected 1 call, got %d", n)
	}
}

func TestRateLimitedFetch_GivesUp(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping retry exhaustion test in short mode")
	}
	shortRetries(t)

	calls := 0
	_, err := rateLimitedFetch(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, &StatusError{StatusCode: http.StatusTooManyRequests, Status: "429 Too Many Requests"}
	})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if calls != maxRetries+1 {
		t.Errorf("Expected %d calls, got %d", maxRetries+1, calls)
	}
}

func TestRateLimitedFetch_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rateLimitedFetch(ctx, func(ctx context.Context) (int, error) {
		t.Error("fn should not be called with a cancelled context")
		return 0, nil
	})
	if err == nil {
		t.Fatal("Expected error for cancelled context, got nil")
	}
}
