package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"foxcap/internal/catalog"
	"foxcap/internal/pipeline"
	"foxcap/internal/testsupport"
)

func importFoxTales(t *testing.T, env *cliTestEnv, entries []urlsEntry) {
	t.Helper()
	urls := writeURLsFile(t, env.baseDir, "Fox Tales", entries)
	if _, _, err := runCLI(t, []string{"catalog", "import", "--urls", urls}, env.configPath); err != nil {
		t.Fatalf("catalog import: %v", err)
	}
}

func TestDownloadThenConvert(t *testing.T) {
	env := setupCLITestEnv(t)
	importFoxTales(t, env, []urlsEntry{
		{Title: "Morning", ID: "FT001"},
		{Title: "Evening", ID: "FT002"},
	})

	out, _, err := runCLI(t, []string{"download"}, env.configPath)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	requireContains(t, out, "Downloaded 2, skipped 0, failed 0")

	xmlPath := filepath.Join(env.cfg.Paths.OutputDir, "fox-tales", "1_morning", "1_morning.xml")
	if _, err := os.Stat(xmlPath); err != nil {
		t.Fatalf("expected caption at %s: %v", xmlPath, err)
	}

	out, _, err = runCLI(t, []string{"download"}, env.configPath)
	if err != nil {
		t.Fatalf("second download: %v", err)
	}
	requireContains(t, out, "Downloaded 0, skipped 2, failed 0")

	out, _, err = runCLI(t, []string{"convert"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Converted 2, failed 0")

	srt, err := os.ReadFile(strings.TrimSuffix(xmlPath, ".xml") + ".srt")
	if err != nil {
		t.Fatalf("read srt: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:01,500\n早上好\n\n2\n00:00:01,500 --> 00:00:02,500\n狐狸\n\n"
	if string(srt) != want {
		t.Fatalf("srt mismatch:\n%q\nwant\n%q", srt, want)
	}
	txt, err := os.ReadFile(strings.TrimSuffix(xmlPath, ".xml") + ".txt")
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if string(txt) != "早上好\n狐狸\n" {
		t.Fatalf("txt = %q", txt)
	}
}

func TestDownloadReportsFailures(t *testing.T) {
	env := setupCLITestEnv(t)
	importFoxTales(t, env, []urlsEntry{
		{Title: "Morning", ID: "FT001"},
		{Title: "Gone", ID: "missing-1"},
	})

	out, _, err := runCLI(t, []string{"download", "--concurrency", "1"}, env.configPath)
	if err == nil {
		t.Fatal("expected download to report failure")
	}
	requireContains(t, err.Error(), "1 of 2 caption downloads failed")
	requireContains(t, out, "Gone")
	requireContains(t, out, "status 404")
	requireContains(t, out, "Downloaded 1, skipped 0, failed 1")
}

func TestDownloadRejectsLockedOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	importFoxTales(t, env, []urlsEntry{{Title: "Morning", ID: "FT001"}})

	lock, err := pipeline.LockOutput(env.cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("LockOutput: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"download"}, env.configPath)
	if err == nil {
		t.Fatal("expected locked output to fail")
	}
	requireContains(t, err.Error(), "locked")
}

func TestConvertDirectoryReportsMalformed(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "adhoc")
	testsupport.WriteCaptionXML(t, filepath.Join(dir, "good.xml"), wordLevelCaption...)
	testsupport.WriteBytes(t, filepath.Join(dir, "bad.xml"), []byte("<Caption><Paragraph><Text>x</Text></Paragraph></Caption>"))

	out, _, err := runCLI(t, []string{"convert", dir, "--no-txt"}, env.configPath)
	if err == nil {
		t.Fatal("expected malformed document to fail the run")
	}
	requireContains(t, out, "bad.xml")
	requireContains(t, out, "Converted 1, failed 1")
	if _, err := os.Stat(filepath.Join(dir, "good.srt")); err != nil {
		t.Fatalf("expected good.srt: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "good.txt")); !os.IsNotExist(err) {
		t.Fatalf("--no-txt should skip transcripts, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.srt")); !os.IsNotExist(err) {
		t.Fatalf("malformed document should not produce srt, stat err = %v", err)
	}
}

func TestConvertFileToStdoutAndPaths(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "one.xml")
	testsupport.WriteCaptionXML(t, src, wordLevelCaption...)

	out, _, err := runCLI(t, []string{"convert", "file", src}, env.configPath)
	if err != nil {
		t.Fatalf("convert file: %v", err)
	}
	if !strings.HasPrefix(out, "1\n00:00:00,000 --> 00:00:01,500\n早上好\n") {
		t.Fatalf("unexpected stdout: %q", out)
	}

	srtPath := filepath.Join(env.baseDir, "out", "one.srt")
	txtPath := filepath.Join(env.baseDir, "out", "one.txt")
	out, _, err = runCLI(t, []string{"convert", "file", src, "--srt", srtPath, "--txt", txtPath}, env.configPath)
	if err != nil {
		t.Fatalf("convert file with paths: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no stdout when writing to paths, got %q", out)
	}
	if data, err := os.ReadFile(txtPath); err != nil || string(data) != "早上好\n狐狸\n" {
		t.Fatalf("transcript = %q, err %v", data, err)
	}
	if _, err := os.Stat(srtPath); err != nil {
		t.Fatalf("expected srt: %v", err)
	}
}

func TestStreamCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	importFoxTales(t, env, []urlsEntry{
		{Title: "Morning", ID: "FT001", StreamURL: "https://stream.example.com/FT001.m3u8"},
		{Title: "Evening", ID: "FT002"},
	})

	out, _, err := runCLI(t, []string{"stream", "Fox Tales", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	if strings.TrimSpace(out) != "https://stream.example.com/FT001.m3u8" {
		t.Fatalf("unexpected stream output %q", out)
	}

	if _, _, err := runCLI(t, []string{"stream", "fox-tales", "2"}, env.configPath); err == nil {
		t.Fatal("expected episode without stream to fail")
	}
	_, _, err = runCLI(t, []string{"stream", "fox-tales", "9"}, env.configPath)
	if err == nil {
		t.Fatal("expected unknown episode to fail")
	}
	requireContains(t, err.Error(), catalog.ErrNotFound.Error())
	if _, _, err := runCLI(t, []string{"stream", "fox-tales", "zero"}, env.configPath); err == nil {
		t.Fatal("expected invalid number to fail")
	}
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without a catalog")
	}
	requireContains(t, out, "[ERROR]")
	requireContains(t, out, "missing")

	importFoxTales(t, env, []urlsEntry{{Title: "Morning", ID: "FT001"}})
	out, _, err = runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "1 series, 1 episodes")
	requireContains(t, out, "4 checks passed")
}
