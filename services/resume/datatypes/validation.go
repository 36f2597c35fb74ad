// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// resumeValidate is the shared validator instance for resume datatypes.
// Initialized in init() with custom validators.
var resumeValidate *validator.Validate

func init() {
	resumeValidate = validator.New()

	_ = resumeValidate.RegisterValidation("gradyear", validateGradYear)
}

// validateGradYear validates a graduation year field.
//
// Accepts years from 1900 up to ten years in the future, so in-progress
// degrees with an expected graduation date pass validation.
func validateGradYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 1900 && year <= time.Now().Year()+10
}

// FieldError describes a single failed validation rule on a submitted record.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationResult is the structured pass/fail outcome the workflow observes.
// The workflow only branches on Valid; FieldErrors exist so the boundary can
// redisplay the form with messages attached.
type ValidationResult struct {
	Valid       bool         `json:"valid"`
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// Validate runs struct validation on a submitted record and translates
// validator errors into a ValidationResult.
//
// Inputs:
//
//	record - Any of the datatypes structs carrying validate tags.
//
// Outputs:
//
//	ValidationResult - Valid=true with no field errors on success.
func Validate(record any) ValidationResult {
	err := resumeValidate.Struct(record)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-field error (e.g. a nil record). Report it against the whole
		// record rather than crashing the request.
		return ValidationResult{
			Valid: false,
			FieldErrors: []FieldError{
				{Field: "", Rule: "struct", Message: err.Error()},
			},
		}
	}

	result := ValidationResult{Valid: false}
	for _, fe := range verrs {
		result.FieldErrors = append(result.FieldErrors, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fe.Error(),
		})
	}
	return result
}
