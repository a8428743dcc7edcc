package pia

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestEnsureTrustAnchor(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n"))
	}))
	defer srv.Close()

	c := NewClient()
	c.CertURL = srv.URL
	c.CertPath = filepath.Join(t.TempDir(), "ca.rsa.4096.crt")

	first, err := c.EnsureTrustAnchor(context.Background())
	if err != nil {
		t.Fatalf("EnsureTrustAnchor() failed: %v", err)
	}
	second, err := c.EnsureTrustAnchor(context.Background())
	if err != nil {
		t.Fatalf("second EnsureTrustAnchor() failed: %v", err)
	}

	if first != c.CertPath || second != first {
		t.Errorf("unexpected paths %q and %q", first, second)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected exactly one download, got %d", n)
	}

	b, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("failed to read cert: %v", err)
	}
	if string(b) != "-----BEGIN CERTIFICATE-----\nMIIB\n-----END CERTIFICATE-----\n" {
		t.Errorf("certificate was not written verbatim: %q", b)
	}
}

func TestEnsureTrustAnchorFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient()
	c.CertURL = srv.URL
	c.CertPath = filepath.Join(t.TempDir(), "ca.rsa.4096.crt")

	if _, err := c.EnsureTrustAnchor(context.Background()); !errors.Is(err, ErrTrustAnchorFetch) {
		t.Fatalf("expected ErrTrustAnchorFetch, got %v", err)
	}
	if _, err := os.Stat(c.CertPath); !os.IsNotExist(err) {
		t.Errorf("no certificate should be cached after a failed download")
	}
}

func TestEnsureTrustAnchorUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient()
	c.CertURL = url
	c.CertPath = filepath.Join(t.TempDir(), "ca.rsa.4096.crt")

	if _, err := c.EnsureTrustAnchor(context.Background()); !errors.Is(err, ErrTrustAnchorFetch) {
		t.Fatalf("expected ErrTrustAnchorFetch, got %v", err)
	}
}
