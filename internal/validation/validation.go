// Package validation holds the submission schemas accepted by the public
// lead, download and newsletter endpoints.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMalformedJSON is returned when a body is not parseable JSON at all.
var ErrMalformedJSON = errors.New("validation: malformed JSON body")

// FieldIssue describes one violated constraint.
type FieldIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError lists every violated field of a rejected submission.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: invalid fields: %s", strings.Join(e.Fields(), ", "))
}

// Fields returns the offending field names in report order.
func (e *ValidationError) Fields() []string {
	out := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		out = append(out, issue.Field)
	}
	return out
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Input is implemented by every schema in this package.
type Input interface {
	normalize()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(f reflect.StructField) string {
	tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}

// Decode parses data into dest, trims it and checks every rule. The returned
// error is either ErrMalformedJSON (wrapped) or a *ValidationError. Every
// wrongly typed field is reported as invalid_type, not only the first.
func Decode(data []byte, dest Input) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		return &ValidationError{Issues: []FieldIssue{{
			Field:   "body",
			Code:    "invalid_type",
			Message: fmt.Sprintf("Expected object, received %s", typeErr.Value),
		}}}
	}

	typeIssues := checkFieldTypes(raw, dest)
	clean, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if err := json.Unmarshal(clean, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	err = Validate(dest)
	if len(typeIssues) == 0 {
		return err
	}

	issues := typeIssues
	var verr *ValidationError
	if errors.As(err, &verr) {
		for _, issue := range verr.Issues {
			if !hasField(typeIssues, issue.Field) {
				issues = append(issues, issue)
			}
		}
	}
	return &ValidationError{Issues: issues}
}

// checkFieldTypes decodes each known field on its own, in declaration order.
// Fields holding the wrong JSON type are reported and removed from raw so the
// remaining ones still decode.
func checkFieldTypes(raw map[string]json.RawMessage, dest Input) []FieldIssue {
	t := reflect.TypeOf(dest)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var issues []FieldIssue
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := jsonName(f)
		for key, value := range raw {
			// encoding/json matches keys case-insensitively
			if !strings.EqualFold(key, name) {
				continue
			}
			target := reflect.New(f.Type)
			var typeErr *json.UnmarshalTypeError
			if err := json.Unmarshal(value, target.Interface()); errors.As(err, &typeErr) {
				issues = append(issues, FieldIssue{
					Field:   name,
					Code:    "invalid_type",
					Message: fmt.Sprintf("Expected %s, received %s", typeErr.Type.Kind(), typeErr.Value),
				})
				delete(raw, key)
			}
		}
	}
	return issues
}

func hasField(issues []FieldIssue, field string) bool {
	for _, issue := range issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// Validate normalizes an already-populated input and checks every rule.
func Validate(in Input) error {
	in.normalize()
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validation: %w", err)
	}
	issues := make([]FieldIssue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, FieldIssue{
			Field:   fe.Field(),
			Code:    fe.Tag(),
			Message: issueMessage(fe),
		})
	}
	return &ValidationError{Issues: issues}
}

var fieldMessages = map[string]string{
	"firstName.required":    "First name is required",
	"lastName.required":     "Last name is required",
	"email.required":        "Invalid email address",
	"email.email":           "Invalid email address",
	"need.required":         "Please describe your needs",
	"resourceSlug.required": "Resource slug is required",
	"resourceType.required": "Invalid enum value. Expected 'datasheet' | 'whitepaper' | 'video'",
	"resourceType.oneof":    "Invalid enum value. Expected 'datasheet' | 'whitepaper' | 'video'",
}

func issueMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}
