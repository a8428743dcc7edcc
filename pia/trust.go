package pia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// EnsureTrustAnchor downloads the PIA root certificate to CertPath unless it
// is already there, and returns CertPath.
func (c *Client) EnsureTrustAnchor(ctx context.Context) (string, error) {
	_, err := os.Stat(c.CertPath)
	if err == nil {
		return c.CertPath, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", ErrTrustAnchorFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.CertURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrustAnchorFetch, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrustAnchorFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", ErrTrustAnchorFetch, resp.Status)
	}

	if err := writeFileAtomic(c.CertPath, resp.Body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTrustAnchorFetch, err)
	}

	return c.CertPath, nil
}

// writeFileAtomic never leaves a partial file at path.
func writeFileAtomic(path string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
