package errs

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrGateway       = errors.New("assistant gateway unavailable")
	ErrAssistantBusy = errors.New("assistant is busy with another request")
)

// ValidationError rejects user input that fails a precondition. The operation is not applied.
type ValidationError struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func Validation(msg string, fields ...string) error {
	return &ValidationError{Message: msg, Fields: fields}
}

// FromValidator converts validator.ValidationErrors into a ValidationError.
func FromValidator(msg string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: msg, Fields: fields}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
