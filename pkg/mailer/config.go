package mailer

import (
	"regexp"
	"strconv"

	"github.com/emersion/go-message/mail"
)

// Config holds SMTP connection settings.
type Config struct {
	Host        string
	Port        int
	Secure      bool // implicit TLS (usually port 465); otherwise STARTTLS when offered
	User        string
	Pass        string
	From        string // defaults to User
	TLSInsecure bool   // skip certificate verification
}

// Missing names the settings that must be present before any network I/O.
func (c Config) Missing() []string {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.Pass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	return missing
}

// Configured reports whether Missing is empty.
func (c Config) Configured() bool {
	return len(c.Missing()) == 0
}

func (c Config) from() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

// sender splits the configured From into a header address and the bare
// envelope address. Unparseable values are used verbatim for both.
func (c Config) sender() (header *mail.Address, envelope string) {
	raw := c.from()
	if a, err := mail.ParseAddress(raw); err == nil {
		return a, a.Address
	}
	return &mail.Address{Address: raw}, raw
}

func (c Config) addr() string {
	port := c.Port
	if port == 0 {
		port = 587
	}
	return c.Host + ":" + strconv.Itoa(port)
}

var addressShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// InvalidAddresses returns, in input order, every address that does not
// have the basic local@domain.tld shape.
func InvalidAddresses(addresses []string) []string {
	var invalid []string
	for _, a := range addresses {
		if !addressShape.MatchString(a) {
			invalid = append(invalid, a)
		}
	}
	return invalid
}
