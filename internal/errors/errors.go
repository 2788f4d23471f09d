package gerr

import (
	"errors"
	"net/http"
)

// Error is a waitlist error surfaced to callers as a {code, message} pair.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    []FieldViolation
	cause      error
}

// FieldViolation describes a single invalid request field.
type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func newError(code string, status int, msg string) *Error {
	return &Error{Code: code, Message: msg, HTTPStatus: status}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Code + ": " + e.Message + ": " + e.cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying cause.
func (e *Error) Wrap(cause error) *Error {
	c := *e
	c.cause = cause
	return &c
}

// WithDetails returns a copy of e carrying field violations.
func (e *Error) WithDetails(details ...FieldViolation) *Error {
	c := *e
	c.Details = append([]FieldViolation(nil), details...)
	return &c
}

// As returns the *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

var (
	WaitlistNotEnabled     = newError("WAITLIST_NOT_ENABLED", http.StatusForbidden, "Waitlist is not enabled")
	EmailAlreadyInWaitlist = newError("EMAIL_ALREADY_IN_WAITLIST", http.StatusForbidden, "Email already in waitlist")
	WaitlistFull           = newError("WAITLIST_FULL", http.StatusForbidden, "Waitlist is full")
	DomainNotAllowed       = newError("DOMAIN_NOT_ALLOWED", http.StatusUnprocessableEntity, "Email domain not allowed")
	InvalidEntry           = newError("INVALID_ENTRY", http.StatusUnprocessableEntity, "Invalid entry data")

	ValidationFailed = newError("VALIDATION_ERROR", http.StatusBadRequest, "Validation message")

	Unauthorized = newError("UNAUTHORIZED", http.StatusUnauthorized, "You are not authorized to perform this action")
	Forbidden    = newError("FORBIDDEN", http.StatusForbidden, "Not enough permissions to perform this action")

	WaitlistEntryNotFound         = newError("WAITLIST_ENTRY_NOT_FOUND", http.StatusNotFound, "Waitlist entry not found")
	WaitlistEntryAlreadyProcessed = newError("WAITLIST_ENTRY_ALREADY_PROCESSED", http.StatusConflict, "Waitlist entry already processed")
	WaitlistApprovalRequired      = newError("WAITLIST_APPROVAL_REQUIRED", http.StatusForbidden, "Waitlist approval required")

	Internal = newError("INTERNAL_ERROR", http.StatusInternalServerError, "Internal server error")
)
