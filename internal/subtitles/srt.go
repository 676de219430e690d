package subtitles

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidSRT reports SRT text that does not follow the numbered-cue layout.
var ErrInvalidSRT = errors.New("invalid srt")

const timingSeparator = "-->"

// Compose renders cues as SRT. Cues are renumbered 1..N in slice order.
// Blank lines inside content would terminate a block, so they are dropped.
func Compose(cues []Cue) []byte {
	var buf bytes.Buffer
	for i, cue := range cues {
		buf.WriteString(strconv.Itoa(i + 1))
		buf.WriteByte('\n')
		buf.WriteString(formatSRTTimestamp(cue.Start))
		buf.WriteString(" --> ")
		buf.WriteString(formatSRTTimestamp(cue.End))
		buf.WriteByte('\n')
		if content := legalContent(cue.Content); content != "" {
			buf.WriteString(content)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func legalContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// ParseSRT reads SRT text into cues. Source indices are not trusted; cues are
// renumbered 1..N in file order. A block whose index line is missing is
// accepted when its first line is the timing line.
func ParseSRT(data []byte) ([]Cue, error) {
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	normalized = strings.TrimPrefix(normalized, "\ufeff")
	lines := strings.Split(normalized, "\n")

	var cues []Cue
	i := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		block := len(cues) + 1
		if isNumeric(lines[i]) && i+1 < len(lines) && strings.Contains(lines[i+1], timingSeparator) {
			i++
		}
		if !strings.Contains(lines[i], timingSeparator) {
			return nil, fmt.Errorf("%w: block %d: expected timing line, got %q", ErrInvalidSRT, block, lines[i])
		}
		start, end, err := parseTimingLine(lines[i])
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %w", ErrInvalidSRT, block, err)
		}
		i++
		var content []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			content = append(content, lines[i])
			i++
		}
		cues = append(cues, Cue{Start: start, End: end, Content: strings.Join(content, "\n")})
	}
	renumber(cues)
	return cues, nil
}

func parseTimingLine(line string) (time.Duration, time.Duration, error) {
	parts := strings.SplitN(line, timingSeparator, 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("start: %w", err)
	}
	// Some writers append positioning hints after the end timestamp.
	endFields := strings.Fields(parts[1])
	if len(endFields) == 0 {
		return 0, 0, fmt.Errorf("invalid timing line %q", line)
	}
	end, err := parseSRTTimestamp(endFields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

func parseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || seconds < 0 || millis < 0 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// formatSRTTimestamp renders HH:MM:SS,mmm. Sub-millisecond precision is
// truncated and negative values clamp to zero.
func formatSRTTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", int64(hours), int64(minutes), int64(seconds), int64(millis))
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
