package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"foxcap/internal/captions"
	"foxcap/internal/fileutil"
	"foxcap/internal/logging"
	"foxcap/internal/subtitles"
)

// ConvertOptions tunes conversion.
type ConvertOptions struct {
	Concurrency int
	WriteTxt    bool
	ForceMerge  bool
}

// Document is one converted caption document.
type Document struct {
	Cues       []subtitles.Cue
	SRT        []byte
	Text       []byte
	WordLevel  bool
	Fragments  int
	Validation []string
}

// ConvertDocument parses caption XML and renders it as SRT and plain text.
// When forceMerge is set the fragments are merged even without word markers.
func ConvertDocument(data []byte, forceMerge bool) (Document, error) {
	fragments, err := captions.ParseBytes(data)
	if err != nil {
		return Document{}, err
	}
	doc := Document{
		WordLevel: subtitles.IsWordLevel(fragments),
		Fragments: len(fragments),
	}
	if forceMerge {
		doc.Cues = subtitles.MergeWordFragments(fragments)
	} else {
		doc.Cues = subtitles.Normalize(fragments)
	}
	doc.SRT = subtitles.Compose(doc.Cues)
	doc.Text = subtitles.PlainText(doc.Cues)
	doc.Validation = subtitles.Validate(doc.Cues)
	return doc, nil
}

// ConvertResult reports what happened to one caption document.
type ConvertResult struct {
	Source   string
	SRTPath  string
	TextPath string
	Cues     int
	Issues   []string
	Status   Status
	Err      error
}

// ConvertFile converts xmlPath and writes the .srt (and optionally .txt)
// beside it. Nothing is written when the document is malformed.
func ConvertFile(xmlPath string, opts ConvertOptions) ConvertResult {
	base := strings.TrimSuffix(xmlPath, filepath.Ext(xmlPath))
	result := ConvertResult{Source: xmlPath, SRTPath: base + ".srt"}
	if opts.WriteTxt {
		result.TextPath = base + ".txt"
	}

	data, err := os.ReadFile(xmlPath)
	if err != nil {
		result.Status, result.Err = StatusFailed, fmt.Errorf("read caption: %w", err)
		return result
	}
	doc, err := ConvertDocument(data, opts.ForceMerge)
	if err != nil {
		result.Status, result.Err = StatusFailed, fmt.Errorf("%s: %w", xmlPath, err)
		return result
	}
	result.Cues = len(doc.Cues)
	result.Issues = doc.Validation

	if err := fileutil.WriteFileAtomic(result.SRTPath, doc.SRT, 0o644); err != nil {
		result.Status, result.Err = StatusFailed, err
		return result
	}
	if opts.WriteTxt {
		if err := fileutil.WriteFileAtomic(result.TextPath, doc.Text, 0o644); err != nil {
			result.Status, result.Err = StatusFailed, err
			return result
		}
	}
	result.Status = StatusDone
	return result
}

// Converter converts every caption document under a directory tree.
type Converter struct {
	opts   ConvertOptions
	logger *slog.Logger
}

// NewConverter wires a converter. A nil logger discards output.
func NewConverter(opts ConvertOptions, logger *slog.Logger) *Converter {
	return &Converter{opts: opts, logger: logging.NewComponentLogger(logger, "converter")}
}

// ConvertTree finds every .xml file under root and converts it. Results are
// ordered by path. The returned error is non-nil when the tree cannot be
// walked or ctx ended the run early.
func (c *Converter) ConvertTree(ctx context.Context, root string) ([]ConvertResult, error) {
	sources, err := findCaptionDocuments(root)
	if err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, c.logger)
	logger.Info("conversion started",
		logging.String(logging.FieldEventType, "convert_start"),
		logging.String("root", root),
		logging.Int("documents", len(sources)),
	)
	start := time.Now()

	results := make([]ConvertResult, len(sources))
	started := runPool(ctx, c.opts.Concurrency, len(sources), func(ctx context.Context, i int) {
		if err := ctx.Err(); err != nil {
			results[i] = ConvertResult{Source: sources[i], Status: StatusFailed, Err: err}
			return
		}
		results[i] = ConvertFile(sources[i], c.opts)
		c.logResult(logger, results[i])
	})
	for i, ok := range started {
		if !ok {
			results[i] = ConvertResult{Source: sources[i], Status: StatusFailed, Err: ctx.Err()}
		}
	}

	summary := SummarizeConversions(results)
	logger.Info("conversion finished",
		logging.String(logging.FieldEventType, "convert_complete"),
		logging.Int("converted", summary.Done),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(start)),
	)
	return results, ctx.Err()
}

func (c *Converter) logResult(logger *slog.Logger, r ConvertResult) {
	docLogger := logger.With(logging.String(logging.FieldDocument, r.Source))
	if r.Err != nil {
		logging.WarnWithContext(docLogger, "caption conversion failed", "convert_failed",
			logging.Error(r.Err),
			logging.String(logging.FieldErrorHint, "re-download the caption document"),
			logging.String(logging.FieldImpact, "no subtitles written for this document"),
		)
		return
	}
	if len(r.Issues) > 0 {
		docLogger.Warn("converted subtitles have timing issues",
			logging.String(logging.FieldEventType, "subtitle_validation"),
			logging.String("issues", strings.Join(r.Issues, "; ")),
		)
	}
	docLogger.Debug("caption converted", logging.Int("cues", r.Cues), logging.String("srt", r.SRTPath))
}

// SummarizeConversions tallies conversion results.
func SummarizeConversions(results []ConvertResult) Summary {
	var s Summary
	for _, r := range results {
		s.add(r.Status)
	}
	return s
}

func findCaptionDocuments(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	var sources []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && strings.EqualFold(filepath.Ext(path), ".xml") && !strings.HasPrefix(d.Name(), ".") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	slices.Sort(sources)
	return sources, nil
}
