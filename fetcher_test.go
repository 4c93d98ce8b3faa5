package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testFetcher(baseURL string) *PageFetcher {
	return NewPageFetcher(&Config{
		SessionToken: "test-token",
		BaseURL:      baseURL,
		Project:      "myteam",
		RootFolderID: "root",
	}, 5*time.Second)
}

func testKey() MonthKey {
	return NewMonthKey(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
}

func TestFetchPage(t *testing.T) {
	var gotPath, gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCookie = r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("Title\n\n[[Keep]]\nk"))
	}))
	defer server.Close()

	text, err := testFetcher(server.URL).FetchPage(context.Background(), testKey())
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if text != "Title\n\n[[Keep]]\nk" {
		t.Errorf("FetchPage() = %q, want page body", text)
	}
	if gotPath != "/pages/myteam/KPT_202404/text" {
		t.Errorf("request path = %q, want %q", gotPath, "/pages/myteam/KPT_202404/text")
	}
	if gotCookie != "connect.sid=test-token" {
		t.Errorf("Cookie header = %q, want %q", gotCookie, "connect.sid=test-token")
	}
}

func TestFetchPageNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "abc123")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("page not found"))
	}))
	defer server.Close()

	_, err := testFetcher(server.URL).FetchPage(context.Background(), testKey())
	if err == nil {
		t.Fatal("FetchPage() should return error on HTTP 404")
	}

	fetchErr, ok := err.(*FetchError)
	if !ok {
		t.Fatalf("FetchPage() should return *FetchError, got %T", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("FetchError.StatusCode = %d, want %d", fetchErr.StatusCode, http.StatusNotFound)
	}
	if fetchErr.Body != "page not found" {
		t.Errorf("FetchError.Body = %q, want %q", fetchErr.Body, "page not found")
	}
	if fetchErr.Header.Get("X-Request-Id") != "abc123" {
		t.Errorf("FetchError.Header missing X-Request-Id, got %v", fetchErr.Header)
	}
	if !strings.Contains(fetchErr.URL, "/pages/myteam/KPT_202404/text") {
		t.Errorf("FetchError.URL = %q, want page URL", fetchErr.URL)
	}
}

func TestFetchPageHTMLFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>Title</p></body></html>"))
	}))
	defer server.Close()

	text, err := testFetcher(server.URL).FetchPage(context.Background(), testKey())
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if strings.Contains(text, "<p>") {
		t.Errorf("FetchPage() should strip HTML, got %q", text)
	}
	if !strings.Contains(text, "Title") {
		t.Errorf("FetchPage() lost text content, got %q", text)
	}
}

func TestAddHandler(t *testing.T) {
	f := &PageFetcher{}
	f.AddHandler(&PlainTextHandler{})

	if len(f.handlers) != 1 {
		t.Errorf("AddHandler() handlers count = %d, want 1", len(f.handlers))
	}
}
