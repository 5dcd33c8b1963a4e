// Package validation carries the client-caused error taxonomy shared by the
// input normalizer and the file policy checks. Handlers map these to 400
// responses; everything else is a server-side failure.
package validation

import "fmt"

// Error codes. One per rejection rule, so callers can pattern-match instead
// of parsing messages.
const (
	CodeMissingField        = "MissingField"
	CodeInvalidName         = "InvalidName"
	CodeInvalidEmail        = "InvalidEmail"
	CodeInvalidPhone        = "InvalidPhone"
	CodeInvalidAge          = "InvalidAge"
	CodeDisallowedExtension = "DisallowedExtension"
	CodeUnsafeFilename      = "UnsafeFilename"
	CodeMalformedEncoding   = "MalformedEncoding"
	CodeFileTooLarge        = "FileTooLarge"
)

// Error is a client-caused validation failure.
type Error struct {
	Code    string
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a validation error for a field.
func New(code, field, message string) *Error {
	return &Error{Code: code, Field: field, Message: message}
}
