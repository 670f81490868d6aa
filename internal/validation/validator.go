package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PayloadError collects per-field violations of a request payload. The
// router's error handler renders it as a 400 with the field messages.
type PayloadError struct {
	violations []violation
}

func (e *PayloadError) Error() string {
	var sb strings.Builder
	for _, v := range e.violations {
		sb.WriteString(v.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Violation appends one more field violation
func (e *PayloadError) Violation(v violation) {
	e.violations = append(e.violations, v)
}

func (e *PayloadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Errors []violation `json:"errors"`
	}{
		Errors: e.violations,
	})
}

// EchoValidator adapts validator/v10 to echo's Validator interface,
// translating violations to human readable messages
type EchoValidator struct {
	validator  *validator.Validate
	translator ut.Translator
}

// Echo builds new EchoValidator
func Echo(validator *validator.Validate, translator ut.Translator) *EchoValidator {
	return &EchoValidator{
		validator:  validator,
		translator: translator,
	}
}

// Validate checks the bound payload against its validate tags
func (v *EchoValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return v.payloadError(ve)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func (v *EchoValidator) payloadError(ve validator.ValidationErrors) error {
	pldErr := &PayloadError{violations: make([]violation, 0, len(ve))}
	for _, e := range ve {
		pldErr.Violation(violation{
			Field:   e.Field(),
			Message: e.Translate(v.translator),
		})
	}
	return pldErr
}
