package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewStore(WithCacheDir(t.TempDir()), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s, srv
}

func TestCacheMissThenHit(t *testing.T) {
	// Concrete scenario: resolving an uncached variant downloads it; a
	// second resolve returns the same path without another request.
	var requests int
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("fake-model-bytes"))
	})

	if s.IsCached(TinyEn) {
		t.Fatal("variant should not be cached yet")
	}

	path1, err := s.Resolve(context.Background(), TinyEn, "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !s.IsCached(TinyEn) {
		t.Fatal("variant should be cached after Resolve")
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want 1", requests)
	}

	path2, err := s.Resolve(context.Background(), TinyEn, "")
	if err != nil {
		t.Fatalf("Resolve (cached): %v", err)
	}
	if path1 != path2 {
		t.Fatalf("paths differ between calls: %q vs %q", path1, path2)
	}
	if requests != 1 {
		t.Fatalf("second Resolve should not have re-downloaded, requests = %d", requests)
	}
}

func TestAtomicCachePublication(t *testing.T) {
	// Concrete scenario: a server that closes the connection mid-response
	// must not leave a ggml-<variant>.bin behind, and IsCached must stay
	// false for it.
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000000")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("only a few bytes"))
		hijacker, ok := w.(http.Hijacker)
		if !ok {
			return
		}
		conn, _, err := hijacker.Hijack()
		if err == nil {
			conn.Close()
		}
	})

	_, err := s.Resolve(context.Background(), Base, "")
	if err == nil {
		t.Fatal("expected a download error from a truncated response")
	}

	if s.IsCached(Base) {
		t.Fatal("truncated download must not be reported as cached")
	}

	finalPath := filepath.Join(s.CacheDir(), Base.Filename())
	if _, statErr := os.Stat(finalPath); !os.IsNotExist(statErr) {
		t.Fatalf("final weight file should not exist, stat error: %v", statErr)
	}
}

func TestResolveChecksumMismatch(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake-model-bytes"))
	})

	_, err := s.Resolve(context.Background(), Small, "0000000000000000000000000000000000000000000000000000000000000000")
	if err == nil {
		t.Fatal("expected a checksum mismatch error")
	}
	if s.IsCached(Small) {
		t.Fatal("a checksum-mismatched download must not be published")
	}
}

func TestResolveDownloadFailureStatus(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	if _, err := s.Resolve(context.Background(), Large, ""); err == nil {
		t.Fatal("expected a download failure for a 404 response")
	}
}

func TestListCachedAndClear(t *testing.T) {
	s, _ := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake-model-bytes"))
	})

	if got := s.ListCached(); len(got) != 0 {
		t.Fatalf("ListCached = %v, want empty", got)
	}

	if _, err := s.Resolve(context.Background(), Tiny, ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := s.Resolve(context.Background(), Base, ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	cached := s.ListCached()
	if len(cached) != 2 {
		t.Fatalf("ListCached = %v, want 2 entries", cached)
	}
	if s.CacheSizeBytes() == 0 {
		t.Fatal("CacheSizeBytes should be non-zero once variants are cached")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := s.ListCached(); len(got) != 0 {
		t.Fatalf("ListCached after Clear = %v, want empty", got)
	}
}

func TestParseVariantUnrecognized(t *testing.T) {
	if _, err := ParseVariant("huge"); err == nil {
		t.Fatal("expected ErrModelNotRecognized")
	}
}
