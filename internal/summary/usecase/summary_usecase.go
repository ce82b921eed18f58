package usecase

import (
	"context"
	"io"
	"strings"

	"meeting-notes-backend/internal/summary/domain"
	"meeting-notes-backend/internal/summary/repository"
	"meeting-notes-backend/pkg/ai"
	"meeting-notes-backend/pkg/apperror"
	"meeting-notes-backend/pkg/docexport"
	"meeting-notes-backend/pkg/extractor"
	"meeting-notes-backend/pkg/mailer"

	"github.com/rs/zerolog"
)

// PlaceholderSummary is stored when the provider returns no content.
const PlaceholderSummary = "Failed to generate summary"

const placeholderWarning = "The AI provider returned no content; a placeholder summary was saved."

type summaryUsecase struct {
	extractor  TextExtractor
	summarizer ai.SummarizerService
	repo       repository.SummaryRepository
	notifier   Notifier
	renderer   DocumentRenderer
	logger     zerolog.Logger
}

// NewSummaryUsecase wires the flows. summarizer may be nil when no provider
// could be configured; GenerateSummary then fails with
// SummaryGenerationFailed.
func NewSummaryUsecase(
	textExtractor TextExtractor,
	summarizer ai.SummarizerService,
	repo repository.SummaryRepository,
	notifier Notifier,
	renderer DocumentRenderer,
	logger zerolog.Logger,
) SummaryUsecase {
	return &summaryUsecase{
		extractor:  textExtractor,
		summarizer: summarizer,
		repo:       repo,
		notifier:   notifier,
		renderer:   renderer,
		logger:     logger,
	}
}

func (u *summaryUsecase) ParseFile(r io.Reader, filename string) (*extractor.Result, error) {
	res, err := u.extractor.ExtractReader(r, filename)
	if err != nil {
		if appErr, ok := apperror.As(err); ok && appErr.Code == apperror.CodeExtractionFailed {
			u.logger.Error().Err(appErr.Err).Str("filename", filename).Msg("file extraction failed")
		}
		return nil, err
	}
	u.logger.Debug().
		Str("filename", res.Filename).
		Str("file_type", string(res.FileType)).
		Int("length", res.Length).
		Msg("file parsed")
	return res, nil
}

func (u *summaryUsecase) GenerateSummary(ctx context.Context, transcript, customPrompt string) (*GenerateResult, error) {
	if strings.TrimSpace(transcript) == "" || strings.TrimSpace(customPrompt) == "" {
		return nil, apperror.InvalidRequest("Transcript and custom prompt are required")
	}
	if u.summarizer == nil {
		return nil, apperror.SummaryGenerationFailed(nil)
	}

	text, err := u.summarizer.SummarizeTranscript(ctx, transcript, customPrompt)
	if err != nil {
		u.logger.Error().Err(err).
			Str("provider", string(u.summarizer.Provider())).
			Str("model", u.summarizer.Model()).
			Msg("summary generation failed")
		return nil, apperror.SummaryGenerationFailed(err)
	}

	result := &GenerateResult{}
	if strings.TrimSpace(text) == "" {
		u.logger.Warn().
			Str("provider", string(u.summarizer.Provider())).
			Str("model", u.summarizer.Model()).
			Msg("provider returned no content, storing placeholder")
		text = PlaceholderSummary
		result.Warning = placeholderWarning
	}

	s := &domain.Summary{
		OriginalTranscript: transcript,
		CustomPrompt:       customPrompt,
		GeneratedSummary:   text,
	}
	if err := u.repo.Create(ctx, s); err != nil {
		u.logger.Error().Err(err).Msg("failed to persist summary")
		return nil, apperror.SummaryGenerationFailed(err)
	}

	u.logger.Info().Str("summary_id", s.ID).Int("length", len(text)).Msg("summary generated")
	result.Summary = s
	return result, nil
}

func (u *summaryUsecase) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.InvalidRequest("Summary ID is required")
	}
	return u.repo.FindByID(ctx, id)
}

// ShareSummary validates everything, confirms the record exists, sends, and
// only then records the edit and recipients in one update.
func (u *summaryUsecase) ShareSummary(ctx context.Context, id string, emails []string, summary string) (*domain.Summary, error) {
	if id == "" || len(emails) == 0 {
		return nil, apperror.InvalidRequest("Summary ID and email addresses are required")
	}
	if summary == "" {
		return nil, apperror.InvalidRequest("Summary content is required")
	}
	if invalid := mailer.InvalidAddresses(emails); len(invalid) > 0 {
		return nil, apperror.InvalidRecipients(invalid)
	}

	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := u.notifier.SendSummary(ctx, emails, summary); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, id, domain.SummaryUpdate{
		EditedSummary: &summary,
		AppendEmails:  emails,
	})
	if err != nil {
		u.logger.Error().Err(err).Str("summary_id", id).Msg("email sent but summary update failed")
		return nil, err
	}

	u.logger.Info().Str("summary_id", id).Int("recipients", len(emails)).Msg("summary shared")
	return updated, nil
}

func (u *summaryUsecase) ExportSummary(ctx context.Context, id string) ([]byte, error) {
	s, err := u.GetSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := u.renderer.Render(docexport.Document{
		Instruction: s.CustomPrompt,
		Body:        s.LatestText(),
		CreatedAt:   s.CreatedAt,
	})
	if err != nil {
		return nil, apperror.Internal("Failed to export summary", err)
	}
	return data, nil
}
