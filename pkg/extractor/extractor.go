// Package extractor turns uploaded transcript files into normalized text.
package extractor

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"meeting-notes-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

// Result is the outcome of a successful extraction. Every field is derived
// from the upload.
type Result struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
	FileType Kind   `json:"fileType"`
	Length   int    `json:"length"`
}

// fileTextReader reads the text layer of a staged file.
type fileTextReader func(path string) (string, error)

// Extractor dispatches uploads to a format reader. Staged files live in
// tempDir and are removed before Extract returns.
type Extractor struct {
	tempDir  string
	readPDF  fileTextReader
	readDocx fileTextReader
	logger   zerolog.Logger
}

// New creates an Extractor staging uploads under tempDir. An empty tempDir
// means os.TempDir().
func New(tempDir string, logger zerolog.Logger) *Extractor {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Extractor{
		tempDir:  tempDir,
		readPDF:  readPDFText,
		readDocx: readDocxText,
		logger:   logger,
	}
}

// ExtractReader reads r fully and extracts it. A nil r is NoFileProvided.
func (e *Extractor) ExtractReader(r io.Reader, filename string) (*Result, error) {
	if r == nil {
		return nil, apperror.NoFileProvided()
	}
	kind, err := KindFromFilename(filename)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.Internal("Failed to read uploaded file", err)
	}
	return e.extract(data, filename, kind)
}

// Extract converts data to normalized text according to the extension of
// filename. Unsupported extensions fail before any format reader runs.
func (e *Extractor) Extract(data []byte, filename string) (*Result, error) {
	kind, err := KindFromFilename(filename)
	if err != nil {
		return nil, err
	}
	return e.extract(data, filename, kind)
}

func (e *Extractor) extract(data []byte, filename string, kind Kind) (*Result, error) {
	raw, err := e.rawText(data, kind)
	if err != nil {
		return nil, err
	}

	text := Normalize(raw)
	if text == "" {
		return nil, apperror.EmptyExtractedText()
	}

	e.logger.Debug().
		Str("filename", filename).
		Str("file_type", string(kind)).
		Int("bytes", len(data)).
		Msg("extracted text")

	return &Result{
		Text:     text,
		Filename: filename,
		FileType: kind,
		Length:   utf8.RuneCountInString(text),
	}, nil
}

func (e *Extractor) rawText(data []byte, kind Kind) (string, error) {
	switch kind {
	case KindPlain:
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	case KindPDF:
		return e.readStaged(data, kind, e.readPDF,
			"Failed to parse PDF file. Please ensure it's a valid PDF with extractable text.")
	case KindDocx:
		return e.readStaged(data, kind, e.readDocx,
			"Failed to parse DOCX file. Please ensure it's a valid Word document.")
	default:
		return "", apperror.UnsupportedFileType(string(kind))
	}
}

// readStaged writes data to a temp file, runs read on it and removes the
// file on every path out, including a panic inside read.
func (e *Extractor) readStaged(data []byte, kind Kind, read fileTextReader, failure string) (text string, err error) {
	path, err := e.stage(data, kind)
	if err != nil {
		return "", err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			e.logger.Warn().Err(rmErr).Str("path", path).Msg("failed to remove staged upload")
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperror.ExtractionFailed(kind.Format(), failure, fmt.Errorf("panic: %v", r))
		}
	}()

	text, err = read(path)
	if err != nil {
		e.logger.Warn().Err(err).Str("file_type", string(kind)).Msg("format reader failed")
		return "", apperror.ExtractionFailed(kind.Format(), failure, err)
	}
	return text, nil
}

func (e *Extractor) stage(data []byte, kind Kind) (string, error) {
	if !kind.needsStaging() {
		return "", fmt.Errorf("%s uploads are not staged", kind)
	}
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", apperror.Internal("Failed to prepare upload staging", err)
	}

	f, err := os.CreateTemp(e.tempDir, "upload-*"+string(kind))
	if err != nil {
		return "", apperror.Internal("Failed to prepare upload staging", err)
	}
	path := f.Name()

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(path)
		if writeErr == nil {
			writeErr = closeErr
		}
		return "", apperror.Internal("Failed to stage uploaded file", writeErr)
	}
	return path, nil
}
