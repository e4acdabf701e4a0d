// Package wizard implements the three-step contact form: industry, details,
// then contact information, followed by a single submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spurtek/spurtek-leads/internal/validation"
)

var (
	ErrUnknownField     = errors.New("wizard: unknown field")
	ErrAlreadySubmitted = errors.New("wizard: already submitted")
	ErrNotReady         = errors.New("wizard: submit is only available on the contact step")
	ErrIncomplete       = errors.New("wizard: required fields are empty")
)

// IndustryAnswers are the first step's inputs.
type IndustryAnswers struct {
	Industry string
}

func (a IndustryAnswers) complete() bool {
	return present(a.Industry)
}

// DetailsAnswers are the second step's inputs.
type DetailsAnswers struct {
	Need     string
	Timeline string
}

func (a DetailsAnswers) complete() bool {
	return present(a.Need) && present(a.Timeline)
}

// ContactAnswers are the last step's inputs.
type ContactAnswers struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Company   string
	Message   string
}

func (a ContactAnswers) complete() bool {
	return present(a.FirstName) && present(a.LastName) && present(a.Email)
}

// Confirmation is what the intake API returned for an accepted submission.
type Confirmation struct {
	ID      string
	Message string
}

// Submitter delivers the assembled contact record.
type Submitter interface {
	SubmitContact(ctx context.Context, in validation.ContactInput) (Confirmation, error)
}

// Wizard holds the state of one visitor's pass through the form. It is not
// safe for concurrent use.
type Wizard struct {
	step     Step
	industry IndustryAnswers
	details  DetailsAnswers
	contact  ContactAnswers
	result   Confirmation
}

// New returns a wizard on the industry step.
func New() *Wizard {
	return &Wizard{step: StepIndustry}
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	return w.step
}

// Submitted reports whether the form was accepted by the server.
func (w *Wizard) Submitted() bool {
	return w.step == StepSubmitted
}

// Result returns the confirmation of a successful submit.
func (w *Wizard) Result() Confirmation {
	return w.result
}

// Set stores value for field. Any field can be set from any step; values
// survive navigation in both directions.
func (w *Wizard) Set(field, value string) error {
	if w.Submitted() {
		return ErrAlreadySubmitted
	}
	ptr := w.fieldPtr(field)
	if ptr == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*ptr = value
	return nil
}

// Value returns the current value of field, or "" for unknown fields.
func (w *Wizard) Value(field string) string {
	if ptr := w.fieldPtr(field); ptr != nil {
		return *ptr
	}
	return ""
}

func (w *Wizard) fieldPtr(field string) *string {
	switch field {
	case "industry":
		return &w.industry.Industry
	case "need":
		return &w.details.Need
	case "timeline":
		return &w.details.Timeline
	case "firstName":
		return &w.contact.FirstName
	case "lastName":
		return &w.contact.LastName
	case "email":
		return &w.contact.Email
	case "phone":
		return &w.contact.Phone
	case "company":
		return &w.contact.Company
	case "message":
		return &w.contact.Message
	}
	return nil
}

// CanAdvance reports whether the current step's required fields are filled.
func (w *Wizard) CanAdvance() bool {
	switch w.step {
	case StepIndustry:
		return w.industry.complete()
	case StepDetails:
		return w.details.complete()
	case StepContact:
		return w.contact.complete()
	}
	return false
}

// Next moves forward one step when the current step is complete. It never
// leaves the contact step; use Submit for that. Reports whether it moved.
func (w *Wizard) Next() bool {
	if w.step >= LastInputStep || !w.CanAdvance() {
		return false
	}
	w.step++
	return true
}

// Back moves to the previous step. Entered values are kept.
func (w *Wizard) Back() bool {
	if w.step <= StepIndustry || w.step == StepSubmitted {
		return false
	}
	w.step--
	return true
}

// Input composes the contact record from every step's answers.
func (w *Wizard) Input() validation.ContactInput {
	return validation.ContactInput{
		FirstName: w.contact.FirstName,
		LastName:  w.contact.LastName,
		Email:     w.contact.Email,
		Phone:     w.contact.Phone,
		Company:   w.contact.Company,
		Industry:  w.industry.Industry,
		Need:      w.details.Need,
		Timeline:  w.details.Timeline,
		Message:   w.contact.Message,
	}
}

// Submit sends the record once. On failure the wizard stays on the contact
// step and the error is returned unchanged; nothing is retried.
func (w *Wizard) Submit(ctx context.Context, s Submitter) error {
	switch {
	case w.step == StepSubmitted:
		return ErrAlreadySubmitted
	case w.step != StepContact:
		return ErrNotReady
	case !w.contact.complete():
		return ErrIncomplete
	}

	conf, err := s.SubmitContact(ctx, w.Input())
	if err != nil {
		return err
	}
	w.result = conf
	w.step = StepSubmitted
	return nil
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
