// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package validation validates request parameters with go-playground/validator v10.
//
// The validator is a thread-safe singleton that caches struct metadata. Two
// custom tags are registered:
//
//	scope        a department scope token: no delimiter, no whitespace
//	compositeid  an ORG-SCOPE-SEQUENCE identifier
//
// Example:
//
//	params := validation.StaffIDParams{UniqueID: chi.URLParam(r, "uniqueId")}
//	if err := validation.ValidateStruct(&params); err != nil {
//	    respondError(w, r, apperr.InvalidRequest("staff_profile", params.UniqueID, err.Error()))
//	    return
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/campusdocs/internal/identifier"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is a single failed field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the struct field name that failed validation.
func (e *ValidationError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e *ValidationError) Tag() string { return e.tag }

// Param returns the tag parameter, e.g. "64" for "max=64".
func (e *ValidationError) Param() string { return e.param }

// Value returns the value that failed validation.
func (e *ValidationError) Value() any { return e.value }

func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects the failed fields of one struct.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the failed fields.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins the field messages.
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve.errors))
	for i := range ve.errors {
		messages[i] = ve.errors[i].message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for empty tags or nil funcs.
		_ = validate.RegisterValidation("scope", validateScope)
		_ = validate.RegisterValidation("compositeid", validateCompositeID)
	})
	return validate
}

func validateScope(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || strings.Contains(s, identifier.Delimiter) {
		return false
	}
	return strings.IndexFunc(s, unicode.IsSpace) < 0
}

func validateCompositeID(fl validator.FieldLevel) bool {
	_, err := identifier.Parse(fl.Field().String())
	return err == nil
}

// ValidateStruct validates s. It returns nil or a *RequestValidationError.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &RequestValidationError{
			errors: []ValidationError{{field: "unknown", tag: "unknown", message: err.Error()}},
		}
	}

	fieldErrors := make([]ValidationError, len(validationErrs))
	for i, fieldErr := range validationErrs {
		fieldErrors[i] = ValidationError{
			field:   fieldErr.Field(),
			tag:     fieldErr.Tag(),
			param:   fieldErr.Param(),
			value:   fieldErr.Value(),
			message: translateError(fieldErr),
		}
	}
	return &RequestValidationError{errors: fieldErrors}
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required":    "%s is required",
	"numeric":     "%s must be numeric",
	"scope":       "%s must be a single identifier segment",
	"compositeid": "%s must be of the form ORG-SCOPE-SEQUENCE",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}

	isString := fe.Kind().String() == "string"
	switch tag {
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
