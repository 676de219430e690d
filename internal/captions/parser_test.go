package captions

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const wordLevelDocument = `<?xml version="1.0" encoding="utf-8"?>
<Caption>
  <Paragraphs>
    <Paragraph>
      <StartMilliseconds>0</StartMilliseconds>
      <EndMilliseconds>500</EndMilliseconds>
      <Text>[@你@]</Text>
    </Paragraph>
    <Paragraph>
      <StartMilliseconds>500</StartMilliseconds>
      <EndMilliseconds>900</EndMilliseconds>
      <Text>[@你好@]</Text>
    </Paragraph>
    <Paragraph>
      <StartMilliseconds> 900 </StartMilliseconds>
      <EndMilliseconds>1200</EndMilliseconds>
      <Text>你好
nǐ hǎo</Text>
    </Paragraph>
  </Paragraphs>
</Caption>`

func TestParsePreservesDocumentOrder(t *testing.T) {
	fragments, err := ParseBytes([]byte(wordLevelDocument))
	if err != nil {
		t.Fatalf("ParseBytes returned error: %v", err)
	}
	want := []Fragment{
		{Start: 0, End: 500 * time.Millisecond, Text: "[@你@]"},
		{Start: 500 * time.Millisecond, End: 900 * time.Millisecond, Text: "[@你好@]"},
		{Start: 900 * time.Millisecond, End: 1200 * time.Millisecond, Text: "你好\nnǐ hǎo"},
	}
	if len(fragments) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(fragments))
	}
	for i := range want {
		if fragments[i] != want[i] {
			t.Fatalf("fragment %d: got %+v want %+v", i, fragments[i], want[i])
		}
	}
}

func TestParseKeepsDuplicatesAndEmptyText(t *testing.T) {
	doc := `<Root>
<Paragraph><StartMilliseconds>10</StartMilliseconds><EndMilliseconds>20</EndMilliseconds><Text>a</Text></Paragraph>
<Paragraph><StartMilliseconds>10</StartMilliseconds><EndMilliseconds>20</EndMilliseconds><Text>a</Text></Paragraph>
<Paragraph><StartMilliseconds>30</StartMilliseconds><EndMilliseconds>40</EndMilliseconds><Text/></Paragraph>
</Root>`
	fragments, err := ParseBytes([]byte(doc))
	if err != nil {
		t.Fatalf("ParseBytes returned error: %v", err)
	}
	if len(fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(fragments))
	}
	if fragments[0] != fragments[1] {
		t.Fatalf("expected duplicate fragments to be preserved, got %+v and %+v", fragments[0], fragments[1])
	}
	if fragments[2].Text != "" {
		t.Fatalf("expected empty text, got %q", fragments[2].Text)
	}
	if fragments[2].Duration() != 10*time.Millisecond {
		t.Fatalf("unexpected duration %s", fragments[2].Duration())
	}
}

func TestParseEmptyDocument(t *testing.T) {
	fragments, err := ParseBytes([]byte(`<Caption></Caption>`))
	if err != nil {
		t.Fatalf("ParseBytes returned error: %v", err)
	}
	if len(fragments) != 0 {
		t.Fatalf("expected no fragments, got %d", len(fragments))
	}
}

func TestParseRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		field     string
	}{
		{
			name:      "missing start",
			paragraph: `<EndMilliseconds>20</EndMilliseconds><Text>a</Text>`,
			field:     fieldStart,
		},
		{
			name:      "missing end",
			paragraph: `<StartMilliseconds>10</StartMilliseconds><Text>a</Text>`,
			field:     fieldEnd,
		},
		{
			name:      "missing text",
			paragraph: `<StartMilliseconds>10</StartMilliseconds><EndMilliseconds>20</EndMilliseconds>`,
			field:     fieldText,
		},
		{
			name:      "empty offset",
			paragraph: `<StartMilliseconds></StartMilliseconds><EndMilliseconds>20</EndMilliseconds><Text>a</Text>`,
			field:     fieldStart,
		},
		{
			name:      "negative offset",
			paragraph: `<StartMilliseconds>10</StartMilliseconds><EndMilliseconds>-20</EndMilliseconds><Text>a</Text>`,
			field:     fieldEnd,
		},
		{
			name:      "fractional offset",
			paragraph: `<StartMilliseconds>1.5</StartMilliseconds><EndMilliseconds>20</EndMilliseconds><Text>a</Text>`,
			field:     fieldStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<Root>
<Paragraph><StartMilliseconds>0</StartMilliseconds><EndMilliseconds>5</EndMilliseconds><Text>ok</Text></Paragraph>
<Paragraph>` + tt.paragraph + `</Paragraph>
</Root>`
			fragments, err := ParseBytes([]byte(doc))
			if err == nil {
				t.Fatalf("expected error, got %d fragments", len(fragments))
			}
			if fragments != nil {
				t.Fatalf("expected no partial output, got %+v", fragments)
			}
			if !errors.Is(err, ErrMalformedDocument) {
				t.Fatalf("expected ErrMalformedDocument, got %v", err)
			}
			var malformed *MalformedDocumentError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedDocumentError, got %T", err)
			}
			if malformed.Paragraph != 2 {
				t.Fatalf("expected paragraph 2, got %d", malformed.Paragraph)
			}
			if malformed.Field != tt.field {
				t.Fatalf("expected field %s, got %s", tt.field, malformed.Field)
			}
		})
	}
}

func TestParseRejectsBrokenXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<Root><Paragraph><StartMilliseconds>0</Start`))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}

func TestMalformedDocumentErrorMessage(t *testing.T) {
	err := &MalformedDocumentError{Paragraph: 3, Field: fieldText}
	if got := err.Error(); got != "malformed caption document: paragraph 3: missing Text" {
		t.Fatalf("unexpected message %q", got)
	}
}
