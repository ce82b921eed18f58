package extractor

import (
	"path/filepath"
	"strings"

	"meeting-notes-backend/pkg/apperror"
)

// Kind is the closed set of upload formats the extractor understands.
type Kind string

const (
	KindPlain Kind = ".txt"
	KindPDF   Kind = ".pdf"
	KindDocx  Kind = ".docx"
)

// SupportedKinds lists every Kind in dispatch order.
var SupportedKinds = []Kind{KindPlain, KindPDF, KindDocx}

// KindFromFilename resolves the Kind from the lowercased extension of name.
func KindFromFilename(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	for _, k := range SupportedKinds {
		if Kind(ext) == k {
			return k, nil
		}
	}
	return "", apperror.UnsupportedFileType(ext)
}

// Format is the short name used in error details and logs.
func (k Kind) Format() string {
	return strings.TrimPrefix(string(k), ".")
}

// needsStaging reports whether the format reader works from a file path.
func (k Kind) needsStaging() bool {
	return k != KindPlain
}
