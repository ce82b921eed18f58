package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code identifies a failure class that callers can branch on.
type Code string

const (
	CodeInvalidRequest          Code = "INVALID_REQUEST"
	CodeNotFound                Code = "NOT_FOUND"
	CodeInternal                Code = "INTERNAL"
	CodeNoFileProvided          Code = "NO_FILE_PROVIDED"
	CodeUnsupportedFileType     Code = "UNSUPPORTED_FILE_TYPE"
	CodeExtractionFailed        Code = "EXTRACTION_FAILED"
	CodeEmptyExtractedText      Code = "EMPTY_EXTRACTED_TEXT"
	CodeSummaryGenerationFailed Code = "SUMMARY_GENERATION_FAILED"
	CodeInvalidRecipients       Code = "INVALID_RECIPIENTS"
	CodeConfigurationMissing    Code = "CONFIGURATION_MISSING"
	CodeRecipientAddressInvalid Code = "RECIPIENT_ADDRESS_INVALID"
	CodeTransportUnreachable    Code = "TRANSPORT_UNREACHABLE"
	CodeAuthenticationFailed    Code = "AUTHENTICATION_FAILED"
	CodeCertificateError        Code = "CERTIFICATE_ERROR"
	CodeSendFailed              Code = "SEND_FAILED"
)

// Error is a failure with a user-displayable message and the HTTP status the
// boundary layer should answer with. Err keeps the underlying cause for logs.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func InvalidRequest(msg string) *Error {
	return &Error{Code: CodeInvalidRequest, Status: http.StatusBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Text extraction

func NoFileProvided() *Error {
	return &Error{Code: CodeNoFileProvided, Status: http.StatusBadRequest, Message: "No file provided"}
}

func UnsupportedFileType(ext string) *Error {
	return &Error{
		Code:    CodeUnsupportedFileType,
		Status:  http.StatusBadRequest,
		Message: "Unsupported file type. Please upload TXT, PDF, or DOCX files.",
		Details: map[string]any{"extension": ext},
	}
}

// ExtractionFailed hides err from the message; only detail is shown to users.
func ExtractionFailed(format, detail string, err error) *Error {
	return &Error{
		Code:    CodeExtractionFailed,
		Status:  http.StatusInternalServerError,
		Message: detail,
		Details: map[string]any{"format": format},
		Err:     err,
	}
}

func EmptyExtractedText() *Error {
	return &Error{Code: CodeEmptyExtractedText, Status: http.StatusBadRequest, Message: "No text could be extracted from the file"}
}

// Summarization

func SummaryGenerationFailed(err error) *Error {
	return &Error{Code: CodeSummaryGenerationFailed, Status: http.StatusInternalServerError, Message: "Failed to generate summary", Err: err}
}

// Notification

func InvalidRecipients(addresses []string) *Error {
	return &Error{
		Code:    CodeInvalidRecipients,
		Status:  http.StatusBadRequest,
		Message: "Invalid email addresses: " + strings.Join(addresses, ", "),
		Details: map[string]any{"invalid": addresses},
	}
}

func ConfigurationMissing(missing []string) *Error {
	return &Error{
		Code:    CodeConfigurationMissing,
		Status:  http.StatusInternalServerError,
		Message: "Email configuration is missing. Please set up SMTP settings (" + strings.Join(missing, ", ") + ").",
		Details: map[string]any{"missing": missing},
	}
}

func RecipientAddressInvalid(err error) *Error {
	return &Error{Code: CodeRecipientAddressInvalid, Status: http.StatusInternalServerError, Message: "The mail server rejected one or more recipient addresses.", Err: err}
}

func TransportUnreachable(err error) *Error {
	return &Error{Code: CodeTransportUnreachable, Status: http.StatusInternalServerError, Message: "SMTP server not found. Please check your SMTP host setting.", Err: err}
}

func AuthenticationFailed(err error) *Error {
	return &Error{Code: CodeAuthenticationFailed, Status: http.StatusInternalServerError, Message: "Email credentials were rejected. Please check your SMTP settings.", Err: err}
}

func CertificateError(err error) *Error {
	return &Error{Code: CodeCertificateError, Status: http.StatusInternalServerError, Message: "SSL certificate issue. Email service may be temporarily unavailable.", Err: err}
}

func SendFailed(err error) *Error {
	return &Error{Code: CodeSendFailed, Status: http.StatusInternalServerError, Message: "Failed to send email. Please check your email configuration.", Err: err}
}
