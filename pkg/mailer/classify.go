package mailer

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"

	"meeting-notes-backend/pkg/apperror"

	"github.com/emersion/go-smtp"
)

// classify maps a transport failure onto the notifier's error taxonomy.
func classify(err error) *apperror.Error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}

	if isCertificateError(err) {
		return apperror.CertificateError(err)
	}

	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		switch {
		case smtpErr.Code == 530 || smtpErr.Code == 534 || smtpErr.Code == 535:
			return apperror.AuthenticationFailed(err)
		case smtpErr.EnhancedCode[0] == 5 && smtpErr.EnhancedCode[1] == 1,
			smtpErr.Code == 553:
			return apperror.RecipientAddressInvalid(err)
		}
	}

	var step *stepError
	if errors.As(err, &step) {
		switch step.step {
		case stepAuth:
			return apperror.AuthenticationFailed(err)
		case stepDial:
			if isNetworkError(err) {
				return apperror.TransportUnreachable(err)
			}
		}
	}

	if isNetworkError(err) {
		return apperror.TransportUnreachable(err)
	}
	return apperror.SendFailed(err)
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		invalid          x509.CertificateInvalidError
		verification     *tls.CertificateVerificationError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &invalid) ||
		errors.As(err, &verification)
}

func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
