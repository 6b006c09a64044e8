// Package textextract turns resume files into plain text. It is the only place that knows
// about file containers; everything downstream sees a Document.
package textextract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/utils"
)

const (
	plainText     = "text/plain"
	previewLength = 80
)

var mimeTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".txt":  plainText,
}

// Document is the text of one uploaded resume.
type Document struct {
	Filename string
	Text     string
	// Recognized is false when the container is unsupported or could not be read.
	Recognized bool
	Err        error
}

// Extractor converts raw file bytes into a Document.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) Document
}

// DocconvExtractor extracts text with docconv for office/PDF containers and reads plain text as is.
type DocconvExtractor struct {
	logger *zap.Logger
}

var _ Extractor = (*DocconvExtractor)(nil)

func NewDocconvExtractor(logger *zap.Logger) *DocconvExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocconvExtractor{logger: logger}
}

// Supported reports whether the file extension maps to a known container.
func Supported(filename string) bool {
	_, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

func (e *DocconvExtractor) Extract(ctx context.Context, filename string, data []byte) Document {
	doc := Document{Filename: filepath.Base(filename)}

	mimeType, ok := mimeTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		doc.Err = fmt.Errorf("%s: %w", doc.Filename, screening.ErrUnsupportedFormat)
		return doc
	}

	if err := ctx.Err(); err != nil {
		doc.Err = err
		return doc
	}

	if mimeType == plainText {
		doc.Text = sanitizeUTF8(string(data))
		doc.Recognized = true
		return doc
	}

	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		e.logger.Warn("docconv: extraction failed",
			zap.String("file", doc.Filename),
			zap.String("content_type", mimeType),
			zap.Error(err),
		)
		doc.Err = fmt.Errorf("convert %s: %w", doc.Filename, err)
		return doc
	}

	doc.Text = sanitizeUTF8(res.Body)
	doc.Recognized = true
	return doc
}

// Load reads every path and runs it through the extractor. Directories contribute their
// regular files, sorted by name, without recursing. Unreadable files become unrecognized
// documents instead of errors; only a missing top-level path aborts the load.
func Load(ctx context.Context, extractor Extractor, paths []string, logger *zap.Logger) ([]Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := expand(paths)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("reading resume failed", zap.String("file", file), zap.Error(err))
			docs = append(docs, Document{Filename: filepath.Base(file), Err: err})
			continue
		}

		doc := extractor.Extract(ctx, file, data)
		logger.Debug("resume text extracted",
			zap.String("file", doc.Filename),
			zap.Bool("recognized", doc.Recognized),
			zap.Int("text_length", utf8.RuneCountInString(doc.Text)),
			zap.String("text_preview", utils.TruncateForLog(utils.SingleLine(doc.Text), previewLength)),
		)
		docs = append(docs, doc)
	}

	return docs, nil
}

func expand(paths []string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("resume path %q: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %q: %w", path, err)
		}

		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			names = append(names, entry.Name())
		}
		slices.Sort(names)

		for _, name := range names {
			files = append(files, filepath.Join(path, name))
		}
	}
	return files, nil
}

func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
