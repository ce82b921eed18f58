package mailer

import (
	"bufio"
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"log"
	"math/big"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"meeting-notes-backend/pkg/apperror"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deliveredMessage struct {
	from string
	to   []string
	data string
	tls  bool
}

// inboxBackend accepts PLAIN credentials matching validConfig and keeps every
// delivered message.
type inboxBackend struct {
	mu       sync.Mutex
	messages []deliveredMessage
}

func (b *inboxBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	_, isTLS := c.TLSConnectionState()
	return &inboxSession{backend: b, tls: isTLS}, nil
}

func (b *inboxBackend) delivered() []deliveredMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]deliveredMessage(nil), b.messages...)
}

type inboxSession struct {
	backend *inboxBackend
	tls     bool
	from    string
	to      []string
}

func (s *inboxSession) AuthMechanisms() []string { return []string{sasl.Plain} }

func (s *inboxSession) Auth(mech string) (sasl.Server, error) {
	cfg := validConfig()
	return sasl.NewPlainServer(func(identity, username, password string) error {
		if username != cfg.User || password != cfg.Pass {
			return smtp.ErrAuthFailed
		}
		return nil
	}), nil
}

func (s *inboxSession) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *inboxSession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *inboxSession) Data(r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.backend.mu.Lock()
	s.backend.messages = append(s.backend.messages, deliveredMessage{from: s.from, to: s.to, data: string(b), tls: s.tls})
	s.backend.mu.Unlock()
	return nil
}

func (s *inboxSession) Reset() {
	s.from, s.to = "", nil
}

func (s *inboxSession) Logout() error { return nil }

func selfSignedCertificate(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

// startInbox runs an SMTP server on loopback. With withTLS the server offers
// STARTTLS and refuses AUTH until the session is encrypted.
func startInbox(t *testing.T, withTLS bool) (*inboxBackend, Config) {
	t.Helper()
	be := &inboxBackend{}
	srv := smtp.NewServer(be)
	srv.Domain = "localhost"
	srv.ErrorLog = log.New(io.Discard, "", 0)
	if withTLS {
		srv.TLSConfig = &tls.Config{Certificates: []tls.Certificate{selfSignedCertificate(t)}}
	} else {
		srv.AllowInsecureAuth = true
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)
	t.Cleanup(func() { srv.Close() })

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	return be, cfg
}

func TestSMTPTransport_PlainAuthDelivers(t *testing.T) {
	be, cfg := startInbox(t, false)
	m := New(cfg, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"a@example.com", "b@example.org"}, "Alice owns the budget.")
	require.NoError(t, err)

	got := be.delivered()
	require.Len(t, got, 1)
	assert.Equal(t, "notes@example.com", got[0].from)
	assert.Equal(t, []string{"a@example.com", "b@example.org"}, got[0].to)
	assert.Contains(t, got[0].data, "Subject: Meeting Summary - AI Generated")
	assert.NotContains(t, got[0].data, "a@example.com")
	assert.False(t, got[0].tls)
}

func TestSMTPTransport_WrongPasswordIsAuthenticationFailed(t *testing.T) {
	be, cfg := startInbox(t, false)
	cfg.Pass = "not-the-password"
	m := New(cfg, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"a@example.com"}, "text")

	assert.True(t, apperror.Is(err, apperror.CodeAuthenticationFailed), "got %v", err)
	assert.Empty(t, be.delivered())
	assert.True(t, apperror.Is(m.Verify(context.Background()), apperror.CodeAuthenticationFailed))
}

func TestSMTPTransport_UpgradesWithStartTLS(t *testing.T) {
	be, cfg := startInbox(t, true)
	cfg.TLSInsecure = true
	m := New(cfg, zerolog.Nop())

	require.NoError(t, m.Verify(context.Background()))
	require.NoError(t, m.SendSummary(context.Background(), []string{"a@example.com"}, "Bob sends the forecast."))

	got := be.delivered()
	require.Len(t, got, 1)
	assert.True(t, got[0].tls)
}

func TestSMTPTransport_UntrustedStartTLSCertificate(t *testing.T) {
	be, cfg := startInbox(t, true)
	m := New(cfg, zerolog.Nop())

	err := m.SendSummary(context.Background(), []string{"a@example.com"}, "text")

	assert.True(t, apperror.Is(err, apperror.CodeCertificateError), "got %v", err)
	assert.Empty(t, be.delivered())
}

// scriptedServer accepts one session, takes the message, then drops the
// connection instead of answering QUIT.
func scriptedServer(t *testing.T) (Config, <-chan struct{}) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		io.WriteString(conn, "220 localhost ESMTP\r\n")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			verb, _, _ := strings.Cut(strings.TrimSpace(line), " ")
			switch strings.ToUpper(verb) {
			case "EHLO", "HELO":
				io.WriteString(conn, "250-localhost\r\n250 AUTH PLAIN\r\n")
			case "AUTH":
				io.WriteString(conn, "235 2.7.0 Authenticated\r\n")
			case "MAIL", "RCPT":
				io.WriteString(conn, "250 2.0.0 OK\r\n")
			case "DATA":
				io.WriteString(conn, "354 Go ahead\r\n")
				for {
					body, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if body == ".\r\n" {
						break
					}
				}
				io.WriteString(conn, "250 2.0.0 Queued\r\n")
				close(accepted)
			case "QUIT":
				return
			default:
				io.WriteString(conn, "502 5.5.1 Unrecognized\r\n")
			}
		}
	}()

	cfg := validConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	return cfg, accepted
}

func TestSMTPTransport_QuitFailureAfterAcceptedMessage(t *testing.T) {
	cfg, accepted := scriptedServer(t)
	var logs bytes.Buffer
	tr := NewSMTPTransport(cfg, zerolog.New(&logs))

	err := tr.Send("notes@example.com", []string{"a@example.com"}, []byte("Subject: hi\r\n\r\nbody\r\n"))

	require.NoError(t, err)
	select {
	case <-accepted:
	case <-time.After(time.Second):
		t.Fatal("message was not accepted by the server")
	}
	assert.Contains(t, logs.String(), "smtp quit failed after delivery")
}
