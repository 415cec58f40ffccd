package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Downloader persists image bytes to disk. Unlike the page fetcher it
// accepts any content type; validating the bytes is out of scope.
type Downloader struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each download request.
	Timeout time.Duration
}

// Save fetches imgURL and writes the body to destPath, returning the number
// of bytes written. Failures leave no partial file behind.
func (d *Downloader) Save(ctx context.Context, imgURL, destPath string) (int64, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}

	client := d.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: d.Timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(destPath)
		return 0, fmt.Errorf("write file: %w", err)
	}
	return n, nil
}

// imageExts are the extensions preserved in saved filenames. Anything else
// defaults to jpg.
var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true, "gif": true,
}

// FileName builds the sequential output name <prefix>_<index>.<ext>. The
// extension comes from the URL path when it is a known image type, with
// jpeg normalized to jpg; everything else falls back to jpg.
func FileName(prefix string, index int, imgURL string) string {
	return fmt.Sprintf("%s_%d%s", prefix, index, extFromURL(imgURL))
}

func extFromURL(imgURL string) string {
	u, err := url.Parse(imgURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(u.Path), "."))
	if !imageExts[ext] {
		return ".jpg"
	}
	if ext == "jpeg" {
		ext = "jpg"
	}
	return "." + ext
}
