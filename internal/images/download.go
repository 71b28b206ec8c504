package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abuzarmahmood/pr-blog-bot/internal/logging"
)

const downloadAttempts = 3

// Downloader fetches a generated image to local disk. Failures never
// propagate past Download; the boolean result is the whole contract.
type Downloader struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	Log        logging.Logger
}

// Download retrieves rawURL into dest. It validates the URL scheme before
// any network activity, requires an image content type, writes through a
// temp file renamed into place only after a non-empty result is verified,
// and retries up to 3 total attempts on timeout, transport failure, or
// verification failure. Scheme and content-type failures are terminal.
func (d *Downloader) Download(ctx context.Context, rawURL, dest string) bool {
	err := withRetry(downloadAttempts,
		func(err error) bool { return !isTerminal(err) },
		func() error { return d.fetchOnce(ctx, rawURL, dest) },
	)
	if err != nil {
		d.Log.Error(err, "image download failed", "url", rawURL, "dest", dest)
		return false
	}
	return true
}

func (d *Downloader) fetchOnce(ctx context.Context, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return terminal(fmt.Errorf("invalid url: %w", err))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return terminal(fmt.Errorf("unsupported url scheme %q", u.Scheme))
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return terminal(fmt.Errorf("build request: %w", err))
	}

	client := d.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return terminal(fmt.Errorf("content type %q is not an image", ct))
	}

	return writeVerified(resp.Body, dest)
}

// writeVerified streams body into a temp file and renames it over dest only
// after confirming a non-empty write, so a failed attempt never leaves a
// truncated destination behind.
func writeVerified(body io.Reader, dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("downloaded image is empty")
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("finalize image: %w", err)
	}
	return nil
}
