package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "tf2-trader/test" {
			t.Errorf("User-Agent = %q", got)
		}
		if r.URL.Path == "/missing" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, "tf2-trader/test")

	status, body, err := c.Get(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if status != http.StatusOK || string(body) != `{"ok":true}` {
		t.Errorf("Get() = %d, %q", status, body)
	}

	status, _, err = c.Get(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("Get() status = %d, want 404", status)
	}
}

func TestClientGetCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := NewClient(5*time.Second, "").Get(ctx, srv.URL)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Get() error = %v, want context.DeadlineExceeded", err)
	}
}
