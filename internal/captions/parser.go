package captions

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	paragraphElement = "Paragraph"
	fieldStart       = "StartMilliseconds"
	fieldEnd         = "EndMilliseconds"
	fieldText        = "Text"
)

const maxOffsetMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

var errOffsetRange = errors.New("offset out of range")

// paragraph mirrors one caption record. Pointer fields distinguish an absent
// element from an empty one.
type paragraph struct {
	Start *string `xml:"StartMilliseconds"`
	End   *string `xml:"EndMilliseconds"`
	Text  *string `xml:"Text"`
}

// ParseBytes parses an in-memory caption document.
func ParseBytes(data []byte) ([]Fragment, error) {
	return Parse(bytes.NewReader(data))
}

// Parse reads a caption document and returns its fragments in document order.
// Paragraph records may appear at any depth below the root element. A record
// missing an offset or text field, or carrying an offset that is not a
// non-negative integer, fails the whole document with ErrMalformedDocument.
func Parse(r io.Reader) ([]Fragment, error) {
	decoder := xml.NewDecoder(r)
	var fragments []Fragment
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != paragraphElement {
			continue
		}
		var record paragraph
		if err := decoder.DecodeElement(&record, &start); err != nil {
			return nil, fmt.Errorf("%w: paragraph %d: %w", ErrMalformedDocument, len(fragments)+1, err)
		}
		fragment, err := record.fragment(len(fragments) + 1)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}
	return fragments, nil
}

func (p paragraph) fragment(position int) (Fragment, error) {
	start, err := parseOffset(position, fieldStart, p.Start)
	if err != nil {
		return Fragment{}, err
	}
	end, err := parseOffset(position, fieldEnd, p.End)
	if err != nil {
		return Fragment{}, err
	}
	if p.Text == nil {
		return Fragment{}, &MalformedDocumentError{Paragraph: position, Field: fieldText}
	}
	return Fragment{Start: start, End: end, Text: *p.Text}, nil
}

func parseOffset(position int, field string, value *string) (time.Duration, error) {
	if value == nil {
		return 0, &MalformedDocumentError{Paragraph: position, Field: field}
	}
	millis, err := strconv.ParseUint(strings.TrimSpace(*value), 10, 63)
	if err != nil {
		return 0, &MalformedDocumentError{Paragraph: position, Field: field, Err: err}
	}
	if millis > maxOffsetMillis {
		return 0, &MalformedDocumentError{Paragraph: position, Field: field, Err: errOffsetRange}
	}
	return time.Duration(millis) * time.Millisecond, nil
}
