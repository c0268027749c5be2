package model

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// defaultBaseURL is the public HuggingFace mirror spec §4.5 names as the
// default download source, matching the teacher's registry.go URLs and
// original_source's ModelSource::huggingface().
const defaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Store resolves Variants to local file paths, downloading them on first
// use. It holds no process-wide mutable state (spec §9): the cache root is
// resolved once, per instance, at construction.
type Store struct {
	cacheDir string
	baseURL  string
	client   *http.Client
	log      *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithCacheDir overrides cache-directory resolution (spec §4.5 precedence
// step 1).
func WithCacheDir(dir string) Option {
	return func(s *Store) { s.cacheDir = dir }
}

// WithBaseURL overrides the download source.
func WithBaseURL(url string) Option {
	return func(s *Store) { s.baseURL = url }
}

// WithHTTPClient overrides the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.client = c }
}

// WithLogger overrides the Store's logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore builds a Store, resolving its cache directory per spec §4.5's
// precedence: caller override, OS user-cache dir, home-directory fallback,
// then the working directory as a last resort.
func NewStore(opts ...Option) (*Store, error) {
	s := &Store{
		baseURL: defaultBaseURL,
		client:  http.DefaultClient,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cacheDir == "" {
		dir, err := resolveCacheDir()
		if err != nil {
			return nil, err
		}
		s.cacheDir = dir
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return nil, cacheDirUnavailableError(err)
	}

	return s, nil
}

func resolveCacheDir() (string, error) {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "orangenote", "models"), nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "orangenote", "models"), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", cacheDirUnavailableError(err)
	}
	return filepath.Join(cwd, "models"), nil
}

// CacheDir returns the resolved cache root.
func (s *Store) CacheDir() string {
	return s.cacheDir
}

func (s *Store) path(v Variant) string {
	return filepath.Join(s.cacheDir, v.Filename())
}

// IsCached reports whether a variant's weight file is present and
// non-empty.
func (s *Store) IsCached(v Variant) bool {
	info, err := os.Stat(s.path(v))
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

// ListCached returns every variant currently cached, in registry order.
func (s *Store) ListCached() []Variant {
	var cached []Variant
	for _, v := range AllVariants {
		if s.IsCached(v) {
			cached = append(cached, v)
		}
	}
	return cached
}

// CacheSizeBytes returns the combined on-disk size of every cached weight
// file.
func (s *Store) CacheSizeBytes() uint64 {
	var total uint64
	for _, v := range AllVariants {
		if info, err := os.Stat(s.path(v)); err == nil {
			total += uint64(info.Size())
		}
	}
	return total
}

// Remove deletes a cached variant's weight file. Removing a variant that
// is not cached is not an error.
func (s *Store) Remove(v Variant) error {
	if err := os.Remove(s.path(v)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("model: remove %s: %w", v, err)
	}
	return nil
}

// Clear removes every cached weight file, the Go analogue of
// model_manager.rs's clear_cache.
func (s *Store) Clear() error {
	for _, v := range AllVariants {
		if err := s.Remove(v); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the local path to variant v, downloading it first if
// absent. sha256Hex, if non-empty, is verified against the downloaded
// file before it is published into the cache; a mismatch leaves no file
// behind and returns ErrChecksumMismatch.
func (s *Store) Resolve(ctx context.Context, v Variant, sha256Hex string) (string, error) {
	path := s.path(v)
	if s.IsCached(v) {
		return path, nil
	}

	s.log.Info("model not cached, downloading", "variant", v.String(), "url", s.downloadURL(v))
	if err := s.download(ctx, v, path, sha256Hex); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) downloadURL(v Variant) string {
	return fmt.Sprintf("%s/%s", s.baseURL, v.Filename())
}

// download streams the weight file to a temporary sibling and renames it
// into place only on complete, non-error receipt (spec §4.5's atomic
// publication). A crash mid-download leaves only the ".download" sibling,
// which IsCached never returns as present — grounded on the teacher's
// internal/models/manager.go downloadFile.
func (s *Store) download(ctx context.Context, v Variant, destPath, sha256Hex string) error {
	tmpPath := destPath + ".download"
	defer os.Remove(tmpPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.downloadURL(v), nil)
	if err != nil {
		return downloadFailureError(v, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return downloadFailureError(v, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return downloadFailureError(v, fmt.Errorf("http status %d", resp.StatusCode))
	}

	file, err := os.Create(tmpPath)
	if err != nil {
		return downloadFailureError(v, err)
	}

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(file, hasher), resp.Body)
	closeErr := file.Close()
	if err != nil {
		return downloadFailureError(v, err)
	}
	if closeErr != nil {
		return downloadFailureError(v, closeErr)
	}
	if written == 0 {
		return downloadFailureError(v, fmt.Errorf("empty response body"))
	}

	if sha256Hex != "" {
		got := hex.EncodeToString(hasher.Sum(nil))
		if got != sha256Hex {
			return checksumMismatchError(v, sha256Hex, got)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return downloadFailureError(v, err)
	}

	s.log.Info("model downloaded", "variant", v.String(), "bytes", written, "path", destPath)
	return nil
}
