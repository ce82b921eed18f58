// Package docexport renders summary text as a Word document.
package docexport

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

// ContentType is the MIME type of the rendered document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	fontName = "Calibri"
	fontSize = 11
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*\x{2022}]\s+(.+)$`)
)

// Exporter stages documents in tempDir while godocx writes them.
type Exporter struct {
	tempDir string
}

func New(tempDir string) *Exporter {
	return &Exporter{tempDir: tempDir}
}

// Document is what gets rendered.
type Document struct {
	Title       string
	Instruction string
	Body        string
	CreatedAt   time.Time
}

// Render returns the .docx bytes for d. Light markdown in Body (headings,
// bullets, **bold**) is turned into styled runs.
func (e *Exporter) Render(d Document) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("new document: %w", err)
	}

	title := d.Title
	if title == "" {
		title = "Meeting Summary"
	}
	addRun(doc.AddParagraph(""), title, true, 16)
	if d.Instruction != "" {
		addRun(doc.AddParagraph(""), "Instruction: "+d.Instruction, false, 10)
	}
	if !d.CreatedAt.IsZero() {
		addRun(doc.AddParagraph(""), "Generated: "+d.CreatedAt.UTC().Format("2006-01-02 15:04 MST"), false, 10)
	}

	for _, line := range strings.Split(d.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}
		p := doc.AddParagraph("")
		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			addRun(p, m[2], true, headingSize(len(m[1])))
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			addRichText(p, "\u2022 "+m[1])
		default:
			addRichText(p, trimmed)
		}
	}

	return e.save(doc)
}

func (e *Exporter) save(doc *docx.RootDoc) ([]byte, error) {
	if err := os.MkdirAll(e.tempDir, 0o700); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.CreateTemp(e.tempDir, "export-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}
	return os.ReadFile(path)
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(stripInline(text)).Font(fontName).Size(size)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(stripInline(part)).Font(fontName).Size(fontSize)
		}
		if i < len(matches) {
			p.AddText(stripInline(matches[i][1])).Font(fontName).Size(fontSize).Bold(true)
		}
	}
}

func stripInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	return strings.ReplaceAll(s, "`", "")
}
