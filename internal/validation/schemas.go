package validation

import "strings"

// ResourceType enumerates downloadable resource kinds.
type ResourceType string

const (
	ResourceDatasheet  ResourceType = "datasheet"
	ResourceWhitepaper ResourceType = "whitepaper"
	ResourceVideo      ResourceType = "video"
)

// QuoteInput is a quote request submission.
type QuoteInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Message   string `json:"message,omitempty"`
	ProductID string `json:"productId,omitempty"`
}

// DemoInput is a demo booking submission.
type DemoInput struct {
	FirstName     string `json:"firstName" validate:"required,max=100"`
	LastName      string `json:"lastName" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone,omitempty"`
	Company       string `json:"company,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"`
	Message       string `json:"message,omitempty"`
}

// ContactInput is a contact form submission, the record the wizard assembles.
type ContactInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Need      string `json:"need" validate:"required"`
	Timeline  string `json:"timeline,omitempty"`
	Message   string `json:"message,omitempty"`
}

// DownloadInput tracks a resource download. Email may be absent, but a
// present value, including "", must be a valid address.
type DownloadInput struct {
	ResourceSlug string       `json:"resourceSlug" validate:"required"`
	ResourceType ResourceType `json:"resourceType" validate:"required,oneof=datasheet whitepaper video"`
	Email        *string      `json:"email,omitempty" validate:"omitnil,email"`
}

// EmailAddress returns the submitted email, or "" when none was sent.
func (in *DownloadInput) EmailAddress() string {
	if in.Email == nil {
		return ""
	}
	return *in.Email
}

// NewsletterInput is a newsletter signup.
type NewsletterInput struct {
	Email  string `json:"email" validate:"required,email"`
	Source string `json:"source,omitempty"`
}

func (in *QuoteInput) normalize() {
	trimAll(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Company, &in.Industry, &in.Message, &in.ProductID)
}

func (in *DemoInput) normalize() {
	trimAll(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Company, &in.PreferredDate, &in.Message)
}

func (in *ContactInput) normalize() {
	trimAll(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Company, &in.Industry, &in.Need, &in.Timeline, &in.Message)
}

func (in *DownloadInput) normalize() {
	trimAll(&in.ResourceSlug)
	if in.Email != nil {
		trimAll(in.Email)
	}
	in.ResourceType = ResourceType(strings.TrimSpace(string(in.ResourceType)))
}

func (in *NewsletterInput) normalize() {
	trimAll(&in.Email, &in.Source)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
