package usecase

import (
	"context"
	"io"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/pkg/docexport"
	"meeting-notes-backend/pkg/extractor"
)

// SummaryUsecase runs the extract, summarize and share flows.
type SummaryUsecase interface {
	ParseFile(r io.Reader, filename string) (*extractor.Result, error)
	GenerateSummary(ctx context.Context, transcript, customPrompt string) (*GenerateResult, error)
	GetSummary(ctx context.Context, id string) (*domain.Summary, error)
	ShareSummary(ctx context.Context, id string, emails []string, summary string) (*domain.Summary, error)
	ExportSummary(ctx context.Context, id string) ([]byte, error)
}

// GenerateResult is the persisted outcome of GenerateSummary. Warning is set
// when the provider returned nothing and PlaceholderSummary was stored.
type GenerateResult struct {
	Summary *domain.Summary
	Warning string
}

// TextExtractor turns an upload into normalized text.
type TextExtractor interface {
	ExtractReader(r io.Reader, filename string) (*extractor.Result, error)
}

// Notifier delivers summary text to recipients.
type Notifier interface {
	SendSummary(ctx context.Context, recipients []string, summary string) error
}

// DocumentRenderer renders a summary for download.
type DocumentRenderer interface {
	Render(d docexport.Document) ([]byte, error)
}
