// Package sources resolves CLI input values that reference file
// content: @path and file:// for local files, http(s):// and s3:// for
// remote objects downloaded to a temp file.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// File is a resolved source: a local path plus the original file name
// to report to upload endpoints. Remote sources are downloaded to a
// temp file that Cleanup removes.
type File struct {
	Path     string
	FileName string

	temp bool
}

// Cleanup removes the temp file backing a remote source, if any.
func (f *File) Cleanup() {
	if f.temp {
		_ = os.Remove(f.Path)
	}
}

// IsSource reports whether a CLI value references file content rather
// than being a literal.
func IsSource(value string) bool {
	if strings.HasPrefix(value, "@") ||
		strings.HasPrefix(value, "file://") ||
		strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "s3://") {
		return true
	}
	_, err := os.Stat(value)
	return err == nil
}

// Resolve turns a source value into a local file.
func Resolve(ctx context.Context, value string) (*File, error) {
	if strings.HasPrefix(value, "s3://") {
		return downloadS3(ctx, value)
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return downloadHTTP(ctx, value)
	}

	local := localPath(value)
	if _, err := os.Stat(local); err != nil {
		return nil, fmt.Errorf("file not found: %s", value)
	}

	return &File{Path: local, FileName: filepath.Base(local)}, nil
}

// Read resolves a source value and returns its content. Values that do
// not look like a source are returned as-is, so callers can accept
// either inline text or a file reference.
func Read(ctx context.Context, value string) ([]byte, error) {
	if !IsSource(value) {
		return []byte(value), nil
	}

	f, err := Resolve(ctx, value)
	if err != nil {
		return nil, err
	}
	defer f.Cleanup()

	return os.ReadFile(f.Path)
}

func downloadHTTP(ctx context.Context, url string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("failed to download %s: status %d", url, resp.StatusCode)
	}

	name := path.Base(strings.SplitN(url, "?", 2)[0])
	if name == "" || name == "/" || name == "." {
		name = "download"
	}

	return writeTemp(resp.Body, name)
}

func writeTemp(r io.Reader, name string) (*File, error) {
	tmp, err := os.CreateTemp("", "pinads-*")
	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return nil, err
	}

	return &File{Path: tmp.Name(), FileName: name, temp: true}, nil
}

func localPath(value string) string {
	if p, ok := strings.CutPrefix(value, "@"); ok {
		return p
	}
	if p, ok := strings.CutPrefix(value, "file://"); ok {
		return p
	}
	return value
}
