package resource

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Stdin names standard input wherever a document path is accepted.
const Stdin = "-"

// Fetcher retrieves documents by URI.
type Fetcher interface {
	Fetch(uri string) (body []byte, err error)
}

// FileFetcher reads documents from the local filesystem, resolving
// relative paths against a base directory. "-" reads standard input and
// file:// URIs are accepted. Network schemes are rejected.
type FileFetcher struct {
	baseDir string
	stdin   io.Reader
}

// NewFileFetcher creates a FileFetcher with the given base directory.
// An empty base resolves against the working directory.
func NewFileFetcher(baseDir string) *FileFetcher {
	return &FileFetcher{baseDir: baseDir, stdin: os.Stdin}
}

// Resolve maps uri to the filesystem path Fetch would read, or Stdin.
func (f *FileFetcher) Resolve(uri string) (string, error) {
	if uri == Stdin {
		return Stdin, nil
	}
	if rest, ok := strings.CutPrefix(uri, "file://"); ok {
		uri = rest
	} else if i := strings.Index(uri, "://"); i > 0 {
		return "", fmt.Errorf("unsupported URI scheme: %s", uri[:i])
	}
	if !filepath.IsAbs(uri) && f.baseDir != "" {
		uri = filepath.Join(f.baseDir, uri)
	}
	return filepath.Clean(uri), nil
}

func (f *FileFetcher) Fetch(uri string) ([]byte, error) {
	path, err := f.Resolve(uri)
	if err != nil {
		return nil, err
	}
	if path == Stdin {
		return io.ReadAll(f.stdin)
	}
	return os.ReadFile(path)
}

// Decode returns a reader producing UTF-8 from body encoded in charset.
// An empty charset means UTF-8; any WHATWG encoding label is accepted.
func Decode(body io.Reader, charset string) (io.Reader, error) {
	if charset == "" {
		return body, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", charset, err)
	}
	return enc.NewDecoder().Reader(body), nil
}

// Open fetches uri and returns its content decoded to UTF-8.
func Open(f Fetcher, uri, charset string) (io.Reader, error) {
	body, err := f.Fetch(uri)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	return Decode(bytes.NewReader(body), charset)
}
