package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		base string
		want bool
	}{
		{"assets", false},
		{"/srv/models", false},
		{"http://localhost:8080/assets", true},
		{"HTTPS://cdn.example.com", true},
		{"file:///tmp", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.base); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{"http://host/assets", "watermelon.obj", "http://host/assets/watermelon.obj"},
		{"http://host/assets/", "watermelon.obj", "http://host/assets/watermelon.obj"},
		{"assets", "watermelon.obj", filepath.Join("assets", "watermelon.obj")},
	}
	for _, tt := range tests {
		if got := NewFetcher(tt.base).Resolve(tt.name); got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.name, got, tt.want)
		}
	}
}

func TestFetchFileCached(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.obj"), []byte("v 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher(dir)
	for i := 0; i < 2; i++ {
		data, err := f.Fetch(context.Background(), "a.obj")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if string(data) != "v 0 0 0\n" {
			t.Errorf("Fetch() = %q", data)
		}
	}

	hits, misses := f.CacheStats()
	if hits != 1 || misses != 1 {
		t.Errorf("CacheStats() = %d hits, %d misses, want 1/1", hits, misses)
	}
}

func TestFetchFileMissing(t *testing.T) {
	f := NewFetcher(t.TempDir())
	_, err := f.Fetch(context.Background(), "missing.obj")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestFetchHTTP(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/assets/watermelon.obj" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("o melon\n"))
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL + "/assets")
	data, err := f.Fetch(context.Background(), "watermelon.obj")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(data) != "o melon\n" {
		t.Errorf("Fetch() = %q", data)
	}

	// Served from cache the second time
	if _, err := f.Fetch(context.Background(), "watermelon.obj"); err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestFetchHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(srv.URL).Fetch(context.Background(), "watermelon.obj")
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error = %v, want ErrStatus", err)
	}
}

func TestFutureResolvesOnce(t *testing.T) {
	fut := NewFuture[int]()
	if _, ok := fut.Poll(); ok {
		t.Fatal("Poll() reported resolved before Resolve")
	}

	if !fut.Resolve(1, nil) {
		t.Fatal("first Resolve() = false")
	}
	if fut.Resolve(2, errors.New("late")) {
		t.Error("second Resolve() = true")
	}

	res, ok := fut.Poll()
	if !ok || res.Val != 1 || res.Err != nil {
		t.Errorf("Poll() = %+v, %v; want {1 <nil>}, true", res, ok)
	}
}

func TestFutureWaitContext(t *testing.T) {
	fut := NewFuture[string]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := fut.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
}

func TestLoadAsync(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "n.txt"), []byte("12345"), 0644); err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(dir)

	fut := LoadAsync(context.Background(), f, "n.txt", func(b []byte) (int, error) {
		return len(b), nil
	})
	n, err := fut.Wait(context.Background())
	if err != nil || n != 5 {
		t.Errorf("Wait() = %d, %v; want 5, nil", n, err)
	}

	missing := LoadAsync(context.Background(), f, "gone.txt", func(b []byte) (int, error) {
		t.Error("decode called for failed fetch")
		return 0, nil
	})
	if _, err := missing.Wait(context.Background()); err == nil {
		t.Error("Wait() error = nil for missing asset")
	}
}
