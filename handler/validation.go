package handler

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError maps a request field (by its JSON name) to its failure messages.
type ValidationError map[string][]string

// Error joins all messages, ordered by field name.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	var msgs []string
	for _, f := range slices.Sorted(maps.Keys(e)) {
		msgs = append(msgs, e[f]...)
	}
	return strings.Join(msgs, "; ")
}

// ValidationMessenger lets a request type supply human messages for failed
// rules, keyed "<json field>.<tag>", e.g. "userId.required".
type ValidationMessenger interface {
	ValidationMessages() map[string]string
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks v against its `validate` struct tags. Failures come back as ValidationError.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var custom map[string]string
	if m, ok := v.(ValidationMessenger); ok {
		custom = m.ValidationMessages()
	}

	out := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := custom[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = defaultMessage(fe)
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", fe.Field())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
