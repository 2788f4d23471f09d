package form

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/grbpwr-waitlist/internal/errors"
)

// Analog validation.ValidateStruct ozzy validation but returns gerr.ValidationFailed
// carrying one violation per invalid field
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var rawErrors []validation.Errors

	for _, rule := range rules {
		err := validation.ValidateStruct(structField, rule)
		if err != nil {
			ve, ok := convertErrors(err)
			if !ok {
				return gerr.Internal.Wrap(err)
			}
			rawErrors = append(rawErrors, ve)
		}
	}
	return violations(rawErrors...)
}

// ValidateMap validates a map the same way ValidateStruct validates structs.
func ValidateMap(m map[string]interface{}, rules ...*validation.KeyRules) error {
	err := validation.Validate(m, validation.Map(rules...).AllowExtraKeys())
	if err == nil {
		return nil
	}
	ve, ok := convertErrors(err)
	if !ok {
		return gerr.Internal.Wrap(err)
	}
	return violations(ve)
}

func violations(errs ...validation.Errors) error {
	var details []gerr.FieldViolation
	for _, ve := range errs {
		keys := make([]string, 0, len(ve))
		for k := range ve {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			details = append(details, gerr.FieldViolation{
				Field:       k,
				Description: formatErrMsg(ve[k].Error()),
			})
		}
	}
	if len(details) == 0 {
		return nil
	}
	return gerr.ValidationFailed.WithDetails(details...)
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}

func convertErrors(err error) (validation.Errors, bool) {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	var ie validation.InternalError
	if errors.As(err, &ie) {
		return nil, false
	}
	// a single rule error that isn't tied to a field
	var e validation.Error
	if errors.As(err, &e) {
		return validation.Errors{"": e}, true
	}
	return nil, false
}
