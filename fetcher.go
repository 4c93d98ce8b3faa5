package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// maxErrorBody caps how much of a failed response is kept in a FetchError.
const maxErrorBody = 4096

// ContentHandler turns a successful page response into text based on
// response inspection.
type ContentHandler interface {
	CanHandle(url string, resp *http.Response) bool
	Handle(url string, resp *http.Response) (string, error)
}

// HTMLHandler converts HTML responses to plain markdown text. Some
// deployments front the page service with a proxy that answers text/html.
type HTMLHandler struct {
	converter *md.Converter
}

func (h *HTMLHandler) CanHandle(url string, resp *http.Response) bool {
	return strings.Contains(resp.Header.Get("Content-Type"), "text/html")
}

func (h *HTMLHandler) Handle(url string, resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	text, err := h.converter.ConvertString(string(body))
	if err != nil {
		return "", fmt.Errorf("converting HTML to text: %w", err)
	}

	return text, nil
}

// PlainTextHandler passes the body through untouched (fallback).
type PlainTextHandler struct{}

func (h *PlainTextHandler) CanHandle(url string, resp *http.Response) bool {
	return true // always handles as fallback
}

func (h *PlainTextHandler) Handle(url string, resp *http.Response) (string, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}

// PageFetcher retrieves the raw text of a monthly KPT page, authenticated
// with a session cookie.
type PageFetcher struct {
	client   *http.Client
	baseURL  string
	project  string
	token    string
	handlers []ContentHandler
}

// NewPageFetcher creates a fetcher with the default handler chain.
func NewPageFetcher(cfg *Config, timeout time.Duration) *PageFetcher {
	f := &PageFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: cfg.BaseURL,
		project: cfg.Project,
		token:   cfg.SessionToken,
	}

	// Register handlers (most specific first)
	f.AddHandler(&HTMLHandler{converter: md.NewConverter("", true, nil)})
	f.AddHandler(&PlainTextHandler{}) // fallback

	return f
}

// AddHandler adds a content handler to the chain.
func (f *PageFetcher) AddHandler(handler ContentHandler) {
	f.handlers = append(f.handlers, handler)
}

// FetchPage fetches the page text for the given month. Any non-200 status
// fails with a *FetchError carrying status, headers and body; the error is
// not retried here.
func (f *PageFetcher) FetchPage(ctx context.Context, key MonthKey) (string, error) {
	url := JoinPath(f.baseURL, "pages", f.project, key.PageID(), "text")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building page request: %w", err)
	}
	req.Header.Set("Cookie", "connect.sid="+f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &FetchError{
			StatusCode: resp.StatusCode,
			URL:        url,
			Header:     resp.Header,
			Body:       string(body),
		}
	}

	for _, handler := range f.handlers {
		if handler.CanHandle(url, resp) {
			return handler.Handle(url, resp)
		}
	}

	return "", fmt.Errorf("no handler found for %s", url)
}
