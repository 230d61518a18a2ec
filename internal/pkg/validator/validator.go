package validator

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"coderr/internal/pkg/apperr"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// FromBinding converts a gin binding error into a field-keyed
// ValidationError. Field paths use JSON names, e.g. "details[1].price".
func FromBinding(err error) *apperr.ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := &apperr.ValidationError{}
		for _, fe := range verrs {
			out.Add(fieldPath(fe), message(fe))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.NewValidation(typeErr.Field, "Invalid value of type "+typeErr.Value+".")
	}
	if errors.Is(err, io.EOF) {
		return apperr.NewValidation(apperr.NonFieldErrors, "Request body is empty.")
	}
	return apperr.NewValidation(apperr.NonFieldErrors, "Invalid request body.")
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	// drop the root struct name
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return "\"" + toString(fe.Value()) + "\" is not a valid choice."
	case "gte", "min":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "lte", "max":
		if fe.Kind() == reflect.String {
			return "Ensure this field has no more than " + fe.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	case "len":
		return "Ensure this field has exactly " + fe.Param() + " elements."
	default:
		return "Invalid value."
	}
}

func toString(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	b, _ := json.Marshal(rv.Interface())
	return string(b)
}
