package cli

import (
	"context"
	"fmt"
	"os"

	summaryRepo "meeting-notes-backend/internal/summary/repository"
	summaryUsecase "meeting-notes-backend/internal/summary/usecase"
	"meeting-notes-backend/pkg/ai"
	"meeting-notes-backend/pkg/config"
	"meeting-notes-backend/pkg/database"
	"meeting-notes-backend/pkg/docexport"
	"meeting-notes-backend/pkg/extractor"
	"meeting-notes-backend/pkg/logger"
	"meeting-notes-backend/pkg/mailer"

	"github.com/rs/zerolog"
)

// app is the composition root shared by every command.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	mongo    *database.Mongo
	postgres *database.Postgres
}

func newApp() *app {
	cfg := config.Load()
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})
	a := &app{cfg: cfg, logger: log}
	switch cfg.DBDriver {
	case "mongo":
		a.mongo = database.NewMongo(cfg.MongoURI, cfg.MongoDatabase)
	case "postgres":
		a.postgres = database.NewPostgres(cfg.DatabaseURL)
	}
	return a
}

// validate reports fatal configuration errors and logs the rest.
func (a *app) validate() error {
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range a.cfg.Warnings() {
		a.logger.Warn().Msg(w)
	}
	return nil
}

func (a *app) close(ctx context.Context) {
	if a.mongo != nil {
		if err := a.mongo.Close(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("failed to disconnect mongodb")
		}
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close postgres")
		}
	}
}

func (a *app) extractor() *extractor.Extractor {
	return extractor.New(a.cfg.UploadTempDir, logger.Component(a.logger, "extractor"))
}

func (a *app) repository(ctx context.Context) (summaryRepo.SummaryRepository, error) {
	switch a.cfg.DBDriver {
	case "mongo":
		db, err := a.mongo.Database(ctx)
		if err != nil {
			return nil, err
		}
		return summaryRepo.NewMongoSummaryRepository(db), nil
	case "postgres":
		db, err := a.postgres.DB()
		if err != nil {
			return nil, err
		}
		if err := summaryRepo.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return summaryRepo.NewGormSummaryRepository(db), nil
	default:
		a.logger.Warn().Msg("using in-memory summary store; records are lost on exit")
		return summaryRepo.NewMemorySummaryRepository(), nil
	}
}

// summarizer returns nil when the provider cannot be built, so the server
// still starts and generation fails per request.
func (a *app) summarizer(ctx context.Context) ai.SummarizerService {
	svc, err := ai.NewSummarizerService(ctx, ai.Config{
		Provider:      ai.ProviderType(a.cfg.AIProvider),
		GroqAPIKey:    a.cfg.GroqAPIKey,
		GroqModel:     a.cfg.GroqModel,
		GroqBaseURL:   a.cfg.GroqBaseURL,
		GeminiAPIKey:  a.cfg.GeminiAPIKey,
		GeminiModel:   a.cfg.GeminiModel,
		OllamaBaseURL: a.cfg.OllamaBaseURL,
		OllamaModel:   a.cfg.OllamaModel,
	})
	if err != nil {
		a.logger.Warn().Err(err).Str("provider", a.cfg.AIProvider).Msg("AI service unavailable")
		return nil
	}
	a.logger.Info().Str("provider", string(svc.Provider())).Str("model", svc.Model()).Msg("AI service initialized")
	return svc
}

func (a *app) mailer() *mailer.Mailer {
	return mailer.New(mailer.Config{
		Host:        a.cfg.SMTPHost,
		Port:        a.cfg.SMTPPort,
		Secure:      a.cfg.SMTPSecure,
		User:        a.cfg.SMTPUser,
		Pass:        a.cfg.SMTPPass,
		From:        a.cfg.SMTPFrom,
		TLSInsecure: a.cfg.SMTPTLSInsecure,
	}, logger.Component(a.logger, "mailer"))
}

func (a *app) usecase(ctx context.Context, summarizer ai.SummarizerService, notifier summaryUsecase.Notifier) (summaryUsecase.SummaryUsecase, error) {
	repo, err := a.repository(ctx)
	if err != nil {
		return nil, err
	}
	return summaryUsecase.NewSummaryUsecase(
		a.extractor(),
		summarizer,
		repo,
		notifier,
		docexport.New(a.cfg.UploadTempDir),
		logger.Component(a.logger, "summary"),
	), nil
}
