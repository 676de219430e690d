package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"foxcap/internal/config"
	"foxcap/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	server     *httptest.Server
}

var wordLevelCaption = []testsupport.Paragraph{
	{StartMS: 0, EndMS: 400, Text: "[@早@]上好"},
	{StartMS: 400, EndMS: 900, Text: "早[@上@]好"},
	{StartMS: 900, EndMS: 1500, Text: "早上[@好@]"},
	{StartMS: 1500, EndMS: 2500, Text: "[@狐@]狸\nhú li"},
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ".xml") {
			w.WriteHeader(http.StatusOK)
			return
		}
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(testsupport.CaptionXML(wordLevelCaption...))
	}))
	t.Cleanup(srv.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithCaptionBaseURL(srv.URL))
	cfg.Download.RetryAttempts = 1
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base, server: srv}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

type urlsEntry struct {
	Title     string `json:"title"`
	ID        string `json:"id"`
	XMLURL    string `json:"xml_url,omitempty"`
	StreamURL string `json:"stream_url,omitempty"`
}

// writeURLsFile writes a one-series urls.json. Go maps would reorder keys, so
// the document is assembled by hand.
func writeURLsFile(t *testing.T, dir, series string, entries []urlsEntry) string {
	t.Helper()
	key, err := json.Marshal(series)
	if err != nil {
		t.Fatalf("marshal series: %v", err)
	}
	list, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("marshal entries: %v", err)
	}
	path := filepath.Join(dir, "urls.json")
	testsupport.WriteBytes(t, path, []byte("{"+string(key)+":"+string(list)+"}"))
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
