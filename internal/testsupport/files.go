package testsupport

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Paragraph is one caption fragment in a generated document.
type Paragraph struct {
	StartMS int64
	EndMS   int64
	Text    string
}

// CaptionXML renders paragraphs in the caption host's document layout.
func CaptionXML(paragraphs ...Paragraph) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<Caption>\n  <Paragraphs>\n")
	for _, p := range paragraphs {
		b.WriteString("    <Paragraph>\n")
		b.WriteString("      <StartMilliseconds>" + strconv.FormatInt(p.StartMS, 10) + "</StartMilliseconds>\n")
		b.WriteString("      <EndMilliseconds>" + strconv.FormatInt(p.EndMS, 10) + "</EndMilliseconds>\n")
		b.WriteString("      <Text>")
		_ = xml.EscapeText(&b, []byte(p.Text))
		b.WriteString("</Text>\n")
		b.WriteString("    </Paragraph>\n")
	}
	b.WriteString("  </Paragraphs>\n</Caption>\n")
	return []byte(b.String())
}

// WriteCaptionXML writes a generated caption document to path, creating
// parent directories.
func WriteCaptionXML(t testing.TB, path string, paragraphs ...Paragraph) {
	t.Helper()
	WriteBytes(t, path, CaptionXML(paragraphs...))
}

// WriteBytes writes data to path, creating parent directories.
func WriteBytes(t testing.TB, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
