package httpsession

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSession_Get_RetriesOnRetryableStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	sess, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	body, err := sess.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "ok" {
		t.Fatalf("Get() body = %q, want %q", body, "ok")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("server received %d calls, want 3", got)
	}
}

func TestSession_Get_NonRetryableStatusFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sess, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := sess.Get(context.Background(), srv.URL, nil); err == nil {
		t.Fatal("Get() expected error for 404 status")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("server received %d calls, want 1 (no retry on 404)", got)
	}
}
