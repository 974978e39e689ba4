package distance

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	kvRepo "walegrills/database/repository/kv"
)

func newTestService(t *testing.T, body string, hits *int32) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path != "/maps/api/distancematrix/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("origins") != "SE28 8LL, Thamesmead" {
			t.Errorf("unexpected origin %q", r.URL.Query().Get("origins"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	s := NewService("test-key", "SE28 8LL, Thamesmead", kvRepo.NewMemoryStore(), nil)
	s.BaseURL = srv.URL
	return s
}

func TestLookupConvertsUnitsAndCaches(t *testing.T) {
	var hits int32
	s := newTestService(t, `{"status":"OK","rows":[{"elements":[{"status":"OK","distance":{"value":24140.1},"duration":{"value":1800}}]}]}`, &hits)

	trip, err := s.Lookup(context.Background(), "1 High St")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(trip.Miles-15) > 0.001 {
		t.Errorf("expected ~15 miles, got %v", trip.Miles)
	}
	if trip.Hours != 0.5 {
		t.Errorf("expected 0.5 hours, got %v", trip.Hours)
	}

	if _, err := s.Lookup(context.Background(), "  1 high  st "); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected one upstream call, got %d", hits)
	}
}

func TestLookupElementNotFound(t *testing.T) {
	var hits int32
	s := newTestService(t, `{"status":"OK","rows":[{"elements":[{"status":"NOT_FOUND"}]}]}`, &hits)

	_, err := s.Lookup(context.Background(), "Atlantis")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND lookup error, got %v", err)
	}
	if s.VerifyAddress(context.Background(), "Atlantis") == nil {
		t.Error("expected verification to fail")
	}
}

func TestLookupTopLevelStatus(t *testing.T) {
	var hits int32
	s := newTestService(t, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, &hits)
	_, err := s.Lookup(context.Background(), "1 High St")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) || lookupErr.Status != "REQUEST_DENIED" {
		t.Fatalf("expected REQUEST_DENIED, got %v", err)
	}
}

func TestLookupTransportFailure(t *testing.T) {
	s := NewService("k", "origin", nil, nil)
	s.BaseURL = "http://127.0.0.1:1"
	_, err := s.Lookup(context.Background(), "1 High St")
	var lookupErr *LookupError
	if err == nil || errors.As(err, &lookupErr) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
