package leads

import (
	"time"

	"github.com/spurtek/spurtek-leads/internal/validation"
)

// Kind tags which form a lead came from.
type Kind string

const (
	KindQuote   Kind = "quote"
	KindDemo    Kind = "demo"
	KindContact Kind = "contact"
)

// ConfirmationLabel names the request in the submitter confirmation email.
func (k Kind) ConfirmationLabel() string {
	switch k {
	case KindQuote:
		return "quote request"
	case KindDemo:
		return "demo booking"
	default:
		return "contact request"
	}
}

// Lead is a normalized form submission as stored.
type Lead struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"type"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone,omitempty"`
	Company   string            `json:"company,omitempty"`
	Industry  string            `json:"industry,omitempty"`
	Message   string            `json:"message,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// FullName joins first and last name.
func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

// Download records one resource download.
type Download struct {
	ID           string    `json:"id"`
	ResourceSlug string    `json:"resourceSlug"`
	ResourceType string    `json:"resourceType"`
	Email        string    `json:"email,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Subscription is a newsletter signup.
type Subscription struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewQuoteLead(in validation.QuoteInput) *Lead {
	return &Lead{
		Kind:      KindQuote,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Industry:  in.Industry,
		Message:   in.Message,
		Metadata:  metadata("productId", in.ProductID),
	}
}

func NewDemoLead(in validation.DemoInput) *Lead {
	return &Lead{
		Kind:      KindDemo,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Message:   in.Message,
		Metadata:  metadata("preferredDate", in.PreferredDate),
	}
}

// NewContactLead stores need as the message when no message was given.
func NewContactLead(in validation.ContactInput) *Lead {
	message := in.Message
	if message == "" {
		message = in.Need
	}
	return &Lead{
		Kind:      KindContact,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Industry:  in.Industry,
		Message:   message,
		Metadata:  metadata("need", in.Need, "timeline", in.Timeline),
	}
}

// metadata builds a map from key/value pairs, skipping empty values. It
// returns nil when nothing is left.
func metadata(pairs ...string) map[string]string {
	var out map[string]string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[pairs[i]] = pairs[i+1]
	}
	return out
}
