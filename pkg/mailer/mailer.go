// Package mailer delivers meeting summaries over SMTP.
package mailer

import (
	"context"
	"time"

	"meeting-notes-backend/pkg/apperror"

	"github.com/rs/zerolog"
)

// Mailer renders and sends summary emails through a single shared transport.
type Mailer struct {
	cfg       Config
	transport Transport
	logger    zerolog.Logger
	now       func() time.Time
}

// New creates a Mailer over SMTP. Missing settings are not an error here;
// they surface as ConfigurationMissing on each send.
func New(cfg Config, logger zerolog.Logger) *Mailer {
	return NewWithTransport(cfg, NewSMTPTransport(cfg, logger), logger)
}

// NewWithTransport creates a Mailer over an arbitrary transport.
func NewWithTransport(cfg Config, transport Transport, logger zerolog.Logger) *Mailer {
	return &Mailer{
		cfg:       cfg,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// Configured reports whether SMTP settings are complete.
func (m *Mailer) Configured() bool {
	return m.cfg.Configured()
}

// SendSummary sends one message to all recipients, each addressed blind.
// Recipients are expected to be shape-validated by the caller; any address
// failing InvalidAddresses is still rejected here before I/O.
func (m *Mailer) SendSummary(ctx context.Context, recipients []string, summary string) error {
	if missing := m.cfg.Missing(); len(missing) > 0 {
		return apperror.ConfigurationMissing(missing)
	}
	if len(recipients) == 0 {
		return apperror.InvalidRequest("At least one recipient is required")
	}
	if invalid := InvalidAddresses(recipients); len(invalid) > 0 {
		return apperror.InvalidRecipients(invalid)
	}
	if summary == "" {
		return apperror.InvalidRequest("Summary content is required")
	}
	if err := ctx.Err(); err != nil {
		return apperror.SendFailed(err)
	}

	header, envelope := m.cfg.sender()
	msg, err := composeSummary(header, summary, m.now())
	if err != nil {
		return apperror.SendFailed(err)
	}

	if err := m.transport.Send(envelope, recipients, msg); err != nil {
		classified := classify(err)
		m.logger.Error().Err(err).
			Str("code", string(classified.Code)).
			Int("recipients", len(recipients)).
			Msg("failed to send summary email")
		return classified
	}

	m.logger.Info().Int("recipients", len(recipients)).Msg("summary email sent")
	return nil
}

// Verify connects and authenticates without sending.
func (m *Mailer) Verify(ctx context.Context) error {
	if missing := m.cfg.Missing(); len(missing) > 0 {
		return apperror.ConfigurationMissing(missing)
	}
	if err := ctx.Err(); err != nil {
		return apperror.SendFailed(err)
	}
	if err := m.transport.Verify(); err != nil {
		return classify(err)
	}
	return nil
}
