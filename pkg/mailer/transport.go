package mailer

import (
	"bytes"
	"crypto/tls"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog"
)

// Transport delivers a rendered message to the envelope recipients.
type Transport interface {
	Send(from string, to []string, msg []byte) error
	Verify() error
}

// stepError records which SMTP phase failed; classification depends on it.
type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.step + ": " + e.err.Error() }

func (e *stepError) Unwrap() error { return e.err }

const (
	stepDial = "dial"
	stepTLS  = "starttls"
	stepAuth = "auth"
	stepSend = "send"
)

const (
	dialTimeout = 10 * time.Second
	heloName    = "localhost"
)

type smtpTransport struct {
	cfg    Config
	logger zerolog.Logger
}

// NewSMTPTransport returns a Transport that opens one connection per send.
func NewSMTPTransport(cfg Config, logger zerolog.Logger) Transport {
	return &smtpTransport{cfg: cfg, logger: logger}
}

func (t *smtpTransport) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         t.cfg.Host,
		InsecureSkipVerify: t.cfg.TLSInsecure,
	}
}

func (t *smtpTransport) dial() (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", t.cfg.addr(), dialTimeout)
	if err != nil {
		return nil, &stepError{step: stepDial, err: err}
	}
	return conn, nil
}

// connect opens an authenticated session. Implicit TLS is used when Secure is
// set; otherwise STARTTLS is negotiated whenever the server offers it.
func (t *smtpTransport) connect() (*smtp.Client, error) {
	if t.cfg.Secure {
		c, err := smtp.DialTLS(t.cfg.addr(), t.tlsConfig())
		if err != nil {
			return nil, &stepError{step: stepDial, err: err}
		}
		return t.authenticate(c)
	}

	conn, err := t.dial()
	if err != nil {
		return nil, err
	}
	c := smtp.NewClient(conn)
	if err := c.Hello(heloName); err != nil {
		c.Close()
		return nil, &stepError{step: stepDial, err: err}
	}
	if ok, _ := c.Extension("STARTTLS"); !ok {
		return t.authenticate(c)
	}

	// The client cannot upgrade a session that already issued EHLO, so the
	// capability check above costs a second connection.
	_ = c.Quit()
	c.Close()

	conn, err = t.dial()
	if err != nil {
		return nil, err
	}
	c, err = smtp.NewClientStartTLS(conn, t.tlsConfig())
	if err != nil {
		return nil, &stepError{step: stepTLS, err: err}
	}
	// The handshake runs on the first write over the upgraded connection.
	if err := c.Hello(heloName); err != nil {
		c.Close()
		return nil, &stepError{step: stepTLS, err: err}
	}
	return t.authenticate(c)
}

func (t *smtpTransport) authenticate(c *smtp.Client) (*smtp.Client, error) {
	if err := c.Auth(sasl.NewPlainClient("", t.cfg.User, t.cfg.Pass)); err != nil {
		c.Close()
		return nil, &stepError{step: stepAuth, err: err}
	}
	return c, nil
}

func (t *smtpTransport) Send(from string, to []string, msg []byte) error {
	c, err := t.connect()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.SendMail(from, to, bytes.NewReader(msg)); err != nil {
		return &stepError{step: stepSend, err: err}
	}
	// The server accepted the message once DATA completed.
	if err := c.Quit(); err != nil {
		t.logger.Warn().Err(err).Str("host", t.cfg.Host).Msg("smtp quit failed after delivery")
	}
	return nil
}

func (t *smtpTransport) Verify() error {
	c, err := t.connect()
	if err != nil {
		return err
	}
	defer c.Close()
	return c.Quit()
}
