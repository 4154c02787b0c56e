package appointment

import (
	"errors"

	"barbearia/internal/domain"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("appointment belongs to another barber")
	ErrConflict   = domain.ErrConflict
	ErrNotFound   = domain.ErrNotFound
)

// ValidationError lists the offending fields and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func missingFieldsError(err error) error {
	var missing *domain.MissingFieldsError
	if !errors.As(err, &missing) {
		return err
	}
	fields := make(map[string]string, len(missing.Fields))
	for _, f := range missing.Fields {
		fields[f] = "required"
	}
	return &ValidationError{Fields: fields}
}
