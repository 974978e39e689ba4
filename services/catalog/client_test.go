package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	kvRepo "walegrills/database/repository/kv"
)

func TestProductsRetriesOnceAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/product" || r.URL.Query().Get("productType") != "general" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"data":[{"_id":"p1","name":"Jollof","amount":12.5,"productType":"general"}],"totalCount":1}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, kvRepo.NewMemoryStore(), nil)
	c.RetryDelay = 0

	products, err := c.Products(context.Background(), "general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || products[0].ID != "p1" || products[0].Amount != 12.5 {
		t.Errorf("unexpected products %+v", products)
	}
	if _, err := c.Products(context.Background(), "general"); err != nil {
		t.Fatalf("cached call: %v", err)
	}
	if hits != 2 {
		t.Errorf("expected 2 upstream calls, got %d", hits)
	}
}

func TestPlansFailAfterRetry(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, nil)
	c.RetryDelay = 0
	_, err := c.Plans(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if hits != 2 {
		t.Errorf("expected exactly one retry, got %d calls", hits)
	}
}

func TestPlanByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"_id":"a","name":"5 Meal Plan","amount":50},{"_id":"b","name":"10 Meal Plan","amount":90}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, nil)
	p, err := c.Plan(context.Background(), "b")
	if err != nil || p == nil || p.Name != "10 Meal Plan" {
		t.Fatalf("unexpected plan %+v, %v", p, err)
	}
	p, err = c.Plan(context.Background(), "zzz")
	if err != nil || p != nil {
		t.Fatalf("expected nil plan, got %+v, %v", p, err)
	}
}
