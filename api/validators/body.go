package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/gujjushop/backend/pkg/errors"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONBody decodes and validates a request body into dst. Unknown
// fields and trailing content are rejected so client typos surface early.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return decodeError(err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return pkgerrors.New(pkgerrors.CodeValidation, "request body must contain a single JSON object")
	}

	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validator misconfigured")
		}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return pkgerrors.New(pkgerrors.CodeValidation, "request body failed validation").
				WithDetails(formatValidationErrors(fieldErrs))
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body failed validation")
	}
	return nil
}

func decodeError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxErr):
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("request body contains malformed JSON at position %d", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("request body has an invalid value for field %q", typeErr.Field))
	case errors.As(err, &maxBytesErr):
		return pkgerrors.New(pkgerrors.CodeValidation, "request body too large")
	case errors.Is(err, io.EOF):
		return pkgerrors.New(pkgerrors.CodeValidation, "request body must not be empty")
	case strings.HasPrefix(err.Error(), "json: unknown field"):
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("request body contains unknown field %s", field))
	default:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body could not be decoded")
	}
}

func formatValidationErrors(fieldErrs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "uuid":
			details[field] = "must be a valid uuid"
		case "min":
			details[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max":
			details[field] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			details[field] = fmt.Sprintf("must be one of: %s", fe.Param())
		default:
			details[field] = fmt.Sprintf("failed %s validation", fe.Tag())
		}
	}
	return details
}
