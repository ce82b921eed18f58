package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

const (
	summarySubject = "Meeting Summary - AI Generated"
	summaryFooter  = "This summary was generated using AI-powered meeting notes summarizer."
)

var summaryHTML = template.Must(template.New("summary").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; border-bottom: 2px solid #4f46e5; padding-bottom: 10px;">Meeting Summary</h2>
  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <pre style="white-space: pre-wrap; font-family: inherit; margin: 0;">{{.Summary}}</pre>
  </div>
  <p style="color: #666; font-size: 14px; margin-top: 30px;">{{.Footer}}</p>
</div>
`))

func summaryText(summary string) string {
	return "Meeting Summary\n\n" + summary + "\n\n" + summaryFooter
}

// composeSummary renders a multipart/alternative message. Recipients are
// left out of the headers so that nobody sees the other addresses.
func composeSummary(from *mail.Address, summary string, now time.Time) ([]byte, error) {
	var htmlBody bytes.Buffer
	if err := summaryHTML.Execute(&htmlBody, struct{ Summary, Footer string }{summary, summaryFooter}); err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	var h mail.Header
	h.SetDate(now)
	h.SetAddressList("From", []*mail.Address{from})
	h.Set("To", "undisclosed-recipients:;")
	h.SetSubject(summarySubject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create message writer: %w", err)
	}
	if err := writePart(w, "text/plain", summaryText(summary)); err != nil {
		return nil, err
	}
	if err := writePart(w, "text/html", htmlBody.String()); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close message writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writePart(w *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	ph.Set("Content-Transfer-Encoding", "quoted-printable")
	pw, err := w.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return fmt.Errorf("write %s part: %w", contentType, err)
	}
	return pw.Close()
}
