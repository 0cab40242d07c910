// Package fetch loads source documents from files, URLs and standard input.
//
// Proceedings PDFs need random access, so each source is read fully into
// memory under a size limit.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// size limits to prevent memory overload
const (
	MaxFileSizeBytes = 100 * 1024 * 1024 // proceedings volumes run large
	MaxHTTPSizeBytes = 100 * 1024 * 1024
)

const HTTPRequestTimeout = 60 * time.Second

var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6
	HTTPTLSTimeout            = HTTPRequestTimeout / 6
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// Stdin is read for the "-" source.
var Stdin io.Reader = os.Stdin

// Resource is a loaded source document.
type Resource struct {
	Source      string // as given on the command line
	Data        []byte
	ContentType string // from the HTTP response, or empty
}

// Reader returns a reader over the resource bytes that also supports ReadAt.
func (r *Resource) Reader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// Load reads a source into memory. It supports three kinds of sources:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
func Load(ctx context.Context, source string) (*Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case source == "-":
		data, err := readLimited(Stdin, MaxFileSizeBytes, "stdin")
		if err != nil {
			return nil, err
		}
		return &Resource{Source: source, Data: data}, nil
	case IsURL(source):
		return loadURL(ctx, source)
	default:
		return loadFile(source)
	}
}

func loadURL(ctx context.Context, url string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "papertrend/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %d", url, resp.StatusCode)
	}

	// reject early when the server announces an oversized body
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	data, err := readLimited(resp.Body, MaxHTTPSizeBytes, url)
	if err != nil {
		return nil, err
	}
	return &Resource{Source: url, Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func loadFile(path string) (*Resource, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)", path, info.Size(), MaxFileSizeBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return &Resource{Source: path, Data: data}, nil
}

// readLimited reads all of r, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("content from %q exceeds size limit", source)
	}
	return data, nil
}
