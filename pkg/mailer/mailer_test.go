package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net"
	"strings"
	"testing"
	"time"

	"meeting-notes-backend/pkg/apperror"

	"github.com/emersion/go-message/mail"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTransport struct {
	calls int
	from  string
	to    []string
	msg   []byte
	err   error
}

func (r *recordingTransport) Send(from string, to []string, msg []byte) error {
	r.calls++
	r.from, r.to, r.msg = from, to, msg
	return r.err
}

func (r *recordingTransport) Verify() error { return r.err }

func validConfig() Config {
	return Config{Host: "smtp.example.com", Port: 587, User: "notes@example.com", Pass: "secret"}
}

func TestInvalidAddresses(t *testing.T) {
	got := InvalidAddresses([]string{
		"alice@example.com",
		"bob",
		"carol@example",
		"dave smith@example.com",
		"erin@sub.example.org",
		"@example.com",
		"frank@@example.com",
	})

	assert.Equal(t, []string{"bob", "carol@example", "dave smith@example.com", "@example.com", "frank@@example.com"}, got)
}

func TestConfig_Missing(t *testing.T) {
	assert.Equal(t, []string{"SMTP_HOST", "SMTP_USER", "SMTP_PASS"}, Config{}.Missing())
	assert.Empty(t, validConfig().Missing())
	assert.Equal(t, "notes@example.com", validConfig().from())
	assert.Equal(t, "smtp.example.com:587", validConfig().addr())

	withFrom := validConfig()
	withFrom.From = "Meeting Bot <bot@example.com>"
	assert.Equal(t, "Meeting Bot <bot@example.com>", withFrom.from())
	header, envelope := withFrom.sender()
	assert.Equal(t, "Meeting Bot", header.Name)
	assert.Equal(t, "bot@example.com", envelope)
}

func TestSendSummary_BlindRecipientsAndBothBodies(t *testing.T) {
	tr := &recordingTransport{}
	m := NewWithTransport(validConfig(), tr, zerolog.Nop())
	m.now = func() time.Time { return time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC) }

	summary := "1. Bob <sends> budget & forecast\n2. Alice reviews"
	err := m.SendSummary(context.Background(), []string{"a@example.com", "b@example.org"}, summary)
	require.NoError(t, err)

	require.Equal(t, 1, tr.calls)
	assert.Equal(t, "notes@example.com", tr.from)
	assert.Equal(t, []string{"a@example.com", "b@example.org"}, tr.to)

	raw := string(tr.msg)
	assert.NotContains(t, raw, "a@example.com")
	assert.NotContains(t, raw, "b@example.org")

	mr, err := mail.CreateReader(bytes.NewReader(tr.msg))
	require.NoError(t, err)
	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Meeting Summary - AI Generated", subject)

	bodies := map[string]string{}
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		ct, _, err := mime.ParseMediaType(p.Header.Get("Content-Type"))
		require.NoError(t, err)
		b, err := io.ReadAll(p.Body)
		require.NoError(t, err)
		bodies[ct] = strings.ReplaceAll(string(b), "\r\n", "\n")
	}

	assert.Equal(t, "Meeting Summary\n\n"+summary+"\n\n"+summaryFooter, bodies["text/plain"])
	assert.Contains(t, bodies["text/html"], "Bob &lt;sends&gt; budget &amp; forecast")
	assert.Contains(t, bodies["text/html"], "<pre")
}

func TestSendSummary_ConfigurationMissingBeforeIO(t *testing.T) {
	tr := &recordingTransport{}
	m := NewWithTransport(Config{Host: "smtp.example.com"}, tr, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"a@example.com"}, "text")

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConfigurationMissing, appErr.Code)
	assert.Equal(t, []string{"SMTP_USER", "SMTP_PASS"}, appErr.Details["missing"])
	assert.Zero(t, tr.calls)
}

func TestSendSummary_RejectsInvalidRecipientsWithoutSending(t *testing.T) {
	tr := &recordingTransport{}
	m := NewWithTransport(validConfig(), tr, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"ok@example.com", "nope"}, "text")

	assert.True(t, apperror.Is(err, apperror.CodeInvalidRecipients))
	assert.Zero(t, tr.calls)
}

func TestSendSummary_ClassifiesTransportErrors(t *testing.T) {
	tr := &recordingTransport{err: &stepError{step: stepAuth, err: errors.New("535 5.7.8 bad credentials")}}
	m := NewWithTransport(validConfig(), tr, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"a@example.com"}, "text")

	assert.True(t, apperror.Is(err, apperror.CodeAuthenticationFailed))
}

func TestSMTPTransport_UnreachableHost(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	require.NoError(t, ln.Close())

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = addr.Port
	m := New(cfg, zerolog.Nop())

	err = m.SendSummary(context.Background(), []string{"a@example.com"}, "text")

	assert.True(t, apperror.Is(err, apperror.CodeTransportUnreachable), "got %v", err)
}

func TestVerify(t *testing.T) {
	assert.True(t, apperror.Is(NewWithTransport(Config{}, &recordingTransport{}, zerolog.Nop()).Verify(context.Background()), apperror.CodeConfigurationMissing))

	ok := NewWithTransport(validConfig(), &recordingTransport{}, zerolog.Nop())
	assert.NoError(t, ok.Verify(context.Background()))

	failing := NewWithTransport(validConfig(), &recordingTransport{err: &net.DNSError{Err: "no such host", Name: "smtp.example.com"}}, zerolog.Nop())
	assert.True(t, apperror.Is(failing.Verify(context.Background()), apperror.CodeTransportUnreachable))
}

func TestSummaryText(t *testing.T) {
	got := summaryText("body")

	assert.True(t, strings.HasPrefix(got, "Meeting Summary\n\nbody"))
	assert.True(t, strings.HasSuffix(got, summaryFooter))
}
