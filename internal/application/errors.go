package application

import (
	"errors"
	"net/http"
)

// Kind classifies an application failure. Domain kinds carry a message fit
// for the caller; infrastructure kinds carry a generic message and the cause.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindAuth
	KindUnverified
	KindInvalidCode
	KindNotFound
	KindStore
	KindDelivery
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindUnverified:
		return "unverified"
	case KindInvalidCode:
		return "invalid_code"
	case KindNotFound:
		return "not_found"
	case KindStore:
		return "store"
	case KindDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// HTTPStatus maps the kind onto the response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict, KindInvalidCode:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindUnverified:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Internal reports whether the failure is unexpected infrastructure trouble.
func (k Kind) Internal() bool {
	return k == KindStore || k == KindDelivery
}

// Error is the result type returned by the services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// AsError extracts an *Error. Anything else is reported as a store failure.
func AsError(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return newError(KindStore, "Internal server error", err)
}

// User-facing messages.
const (
	MsgNameRequired       = "Name is required."
	MsgShortPassword      = "Password must be at least 8 characters long."
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgNotVerified        = "Email not verified. Please verify your email first."
	MsgInvalidCode        = "Invalid verification code."
	MsgDoctorNotFound     = "Doctor not found"
	MsgRegistrationFailed = "Error saving user to database"
	MsgDeliveryFailed     = "Registration saved, but the verification email could not be sent."
	MsgLoginFailed        = "Server error during login"
	MsgVerificationFailed = "Database error during verification"
	MsgSpecialtiesFailed  = "Server error while fetching specialties"
	MsgInsurancesFailed   = "Server error while fetching insurance plans"
	MsgSearchFailed       = "Server error while searching doctors"
	MsgDoctorFetchFailed  = "Server error while fetching doctor details"
	MsgLookupFailed       = "Server error while looking up doctors"
)
