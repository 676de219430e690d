package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foxcap/internal/catalog"
	"foxcap/internal/config"
	"foxcap/internal/fetch"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCatalog(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	if result := CheckCatalog(ctx, path); result.Passed || !strings.Contains(result.Detail, "missing") {
		t.Fatalf("expected missing catalog failure, got %#v", result)
	}

	store, err := catalog.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if result := CheckCatalog(ctx, path); result.Passed || !strings.Contains(result.Detail, "empty") {
		t.Fatalf("expected empty catalog failure, got %#v", result)
	}

	ep, err := catalog.NewEpisode(1, "C1", "Morning", "https://cdn.example.com/C1.xml", "")
	if err != nil {
		t.Fatal(err)
	}
	series, _ := catalog.NewSeries("Fox Tales", "", []catalog.Episode{ep})
	cat, _ := catalog.New(series)
	if err := store.Save(ctx, cat); err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	result := CheckCatalog(ctx, path)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result.Detail != "1 series, 1 episodes" {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckCaptionHost(t *testing.T) {
	tests := []struct {
		name   string
		status int
		pass   bool
	}{
		{"ok", http.StatusOK, true},
		{"forbidden root still reachable", http.StatusForbidden, true},
		{"server error", http.StatusBadGateway, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			result := CheckCaptionHost(context.Background(), fetch.New(fetch.Config{}), srv.URL)
			if result.Passed != tt.pass {
				t.Fatalf("Passed = %v, detail %s", result.Passed, result.Detail)
			}
		})
	}
}

func TestCheckCaptionHost_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := CheckCaptionHost(context.Background(), fetch.New(fetch.Config{}), url)
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestRunAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := config.Default()
	base := t.TempDir()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CatalogDB = filepath.Join(base, "catalog.db")
	cfg.Source.CaptionBaseURL = srv.URL
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Name == "Catalog" {
			if r.Passed {
				t.Fatal("expected catalog check to fail without an import")
			}
			continue
		}
		if !r.Passed {
			t.Fatalf("%s failed: %s", r.Name, r.Detail)
		}
	}
	if !Failed(results) {
		t.Fatal("Failed should report the catalog failure")
	}
	if RunAll(context.Background(), nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
