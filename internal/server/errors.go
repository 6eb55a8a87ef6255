package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/sheet-copywriter/internal/export"
	"github.com/jonathan/sheet-copywriter/internal/llm"
	"github.com/jonathan/sheet-copywriter/internal/sheets"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an *ErrValidation for the
// first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: "failed " + verrs[0].Tag() + " check"}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		urlErr        *sheets.InvalidURLError
		emptyErr      *sheets.EmptyDataError
		headerErr     *sheets.MalformedHeaderError
		formatErr     *export.UnsupportedFormatError
		missingErr    *sheets.MissingColumnsError
		notFoundErr   *sheets.SheetNotFoundError
		fetchErr      *sheets.SheetFetchError
		writeErr      *sheets.SheetWriteError
		apiErr        *llm.APICallError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &urlErr), errors.As(err, &emptyErr),
		errors.As(err, &headerErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &missingErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &fetchErr), errors.As(err, &writeErr), errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
