package usecase

import (
	"errors"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/landing"
)

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeSlugTaken       = "SLUG_TAKEN"
	CodeConflict        = "CONFLICT"
	CodeUnknownTemplate = "UNKNOWN_TEMPLATE"
	CodeInvalidContent  = "INVALID_CONTENT"
	CodeDatabase        = "DATABASE_ERROR"
	CodeQueue           = "QUEUE_ERROR"
	CodeQRCode          = "QRCODE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error { return e.Err }

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationFailed(errs []ValidationError) *DomainError {
	msg := "validation failed"
	if len(errs) > 0 {
		msg = errs[0].Error()
	}
	return &DomainError{Code: CodeValidation, Message: msg, Fields: errs}
}

// classify turns repository and entity errors into use case errors. Unknown
// errors become technical errors with the given code.
func classify(err error, code, message string) error {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te
	}
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return &DomainError{Code: CodeNotFound, Message: message + ": not found"}
	case errors.Is(err, entity.ErrSlugTaken):
		return &DomainError{Code: CodeSlugTaken, Message: "slug already exists"}
	case errors.Is(err, entity.ErrDuplicate), errors.Is(err, entity.ErrInUse):
		return &DomainError{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, entity.ErrValidation):
		return &DomainError{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, landing.ErrUnknownTemplate):
		return &DomainError{Code: CodeUnknownTemplate, Message: err.Error()}
	case errors.Is(err, landing.ErrInvalidContent), errors.Is(err, landing.ErrInvalidPatch):
		return &DomainError{Code: CodeInvalidContent, Message: err.Error()}
	}
	return &TechnicalError{Code: code, Message: message, Err: err}
}
