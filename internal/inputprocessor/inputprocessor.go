package inputprocessor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/internal/util"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// maxBodyBytes caps how much of a remote document is read.
const maxBodyBytes = 10 << 20

// Result holds a post body read from a file or URL.
type Result struct {
	Title       string // best-effort title, empty when none was found
	Body        string
	ContentType string
	Source      string
	Mtime       *time.Time
}

// Processor turns a file path or http(s) URL into a post body.
type Processor interface {
	Process(ctx context.Context, input string) (Result, error)
}

// New creates a default processor. A nil client uses one with a 30s timeout.
func New(client *http.Client) Processor {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &defaultProcessor{client: client}
}

type defaultProcessor struct {
	client *http.Client
}

func (p *defaultProcessor) Process(ctx context.Context, input string) (Result, error) {
	fi, err := os.Stat(input)
	if err == nil {
		if fi.IsDir() {
			return Result{}, fmt.Errorf("input '%s' is a directory, not a file", input)
		}
		return p.processFile(input, fi)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("failed to stat input '%s': %w", input, err)
	}

	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		return p.processURL(ctx, parsedURL)
	}
	return Result{}, fmt.Errorf("input '%s' is neither a readable file nor an http(s) URL", input)
}

func (p *defaultProcessor) processFile(path string, fi os.FileInfo) (Result, error) {
	log.WithField("path", path).Debug("Reading post body from file")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return Result{}, fmt.Errorf("permission denied reading file '%s': %w", path, err)
		}
		return Result{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	absPath, pathErr := filepath.Abs(path)
	if pathErr != nil {
		log.WithError(pathErr).WithField("path", path).Warn("Failed to get absolute path, using original")
		absPath = path
	}
	mtime := fi.ModTime()
	return build(data, http.DetectContentType(data), absPath, filepath.Ext(path), &mtime)
}

func (p *defaultProcessor) processURL(ctx context.Context, u *url.URL) (Result, error) {
	log.WithField("url", u.String()).Debug("Fetching post body")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request for URL '%s': %w", u, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch URL '%s': %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("failed to fetch URL '%s': status code %d %s - Body Hint: %s", u, resp.StatusCode, http.StatusText(resp.StatusCode), string(hint))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body from URL '%s': %w", u, err)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return build(data, ct, u.String(), filepath.Ext(u.Path), nil)
}

func build(data []byte, contentType, source, ext string, mtime *time.Time) (Result, error) {
	body, err := util.CleanText(data, source)
	if err != nil {
		return Result{}, err
	}
	res := Result{Body: body, ContentType: contentType, Source: source, Mtime: mtime}
	if isHTML(contentType, ext) {
		res.Title = htmlTitle(body)
	} else {
		res.Title = textTitle(body)
	}
	return res, nil
}

func isHTML(contentType, ext string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "text/html") {
		return true
	}
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return true
	}
	return false
}

// htmlTitle prefers <title> and falls back to the first <h1>.
func htmlTitle(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// textTitle returns the first non-blank line, without a leading markdown "#".
func textTitle(body string) string {
	sc := bufio.NewScanner(bytes.NewReader([]byte(body)))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimLeft(line, "#"))
	}
	return ""
}

var _ Processor = (*defaultProcessor)(nil)
