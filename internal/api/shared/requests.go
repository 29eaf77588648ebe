package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// MaxRequestBodyBytes bounds the size of decoded request bodies.
const MaxRequestBodyBytes = 1 << 20

// MsgInvalidRequestBody is returned for bodies that are not valid JSON.
const MsgInvalidRequestBody = "Invalid request format"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v. Any failure, including an
// oversized body, is reported as a validation error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewValidationError("", MsgInvalidRequestBody, err)
	}
	return nil
}

// ValidateRequest validates v with its struct tags and converts the first
// failure into a *domain.Error of kind KindValidation, using JSON field names.
func ValidateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return domain.NewValidationError("", "Validation error", err)
	}

	fe := validationErrs[0]
	field := jsonPath(fe.Namespace())
	return domain.NewValidationError(field, fmt.Sprintf("Invalid %s: %s", field, tagMessage(fe)), err)
}

// jsonPath drops the root struct name from a validator namespace,
// e.g. "DeckRequest.cards[0].front" becomes "cards[0].front".
func jsonPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "max":
		return fmt.Sprintf("too long (maximum %s)", fe.Param())
	case "min":
		return fmt.Sprintf("too short (minimum %s)", fe.Param())
	default:
		return "validation failed"
	}
}
