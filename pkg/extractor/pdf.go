package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// readPDFText returns the text layer of every page, pages separated by a
// blank line. Scanned PDFs without a text layer yield an empty string.
func readPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	// MuPDF repairs some garbage into an empty document; a real PDF has pages.
	if doc.NumPage() == 0 {
		return "", errors.New("pdf has no pages")
	}

	var b strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("read page %d: %w", page+1, err)
		}
		if page > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
