package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchSendsUserAgentAndReturnsBody(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<Paragraphs/>"))
	}))
	defer server.Close()

	client := New(Config{UserAgent: "foxcap/test"})
	data, err := client.Fetch(context.Background(), server.URL+"/C0001.xml")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "<Paragraphs/>" {
		t.Fatalf("body = %q", data)
	}
	if gotAgent != "foxcap/test" {
		t.Fatalf("user agent = %q", gotAgent)
	}
}

func TestFetchStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such caption", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := New(Config{}).Fetch(context.Background(), server.URL+"/missing.xml")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "no such caption") {
		t.Fatalf("error should carry body snippet: %v", err)
	}
	if IsRetriable(err) {
		t.Fatal("404 should not be retriable")
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	_, err := New(Config{MaxBytes: 16}).Fetch(context.Background(), server.URL)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestProbeReportsStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	code, err := New(Config{}).Probe(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if code != http.StatusForbidden {
		t.Fatalf("code = %d", code)
	}

	server.Close()
	if _, err := New(Config{}).Probe(context.Background(), server.URL); err == nil {
		t.Fatal("expected transport error after server shutdown")
	}
}
