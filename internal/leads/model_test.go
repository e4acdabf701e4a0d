package leads

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spurtek/spurtek-leads/internal/validation"
)

func TestNewContactLead_MessageFallsBackToNeed(t *testing.T) {
	lead := NewContactLead(validation.ContactInput{FirstName: "Bob", LastName: "J", Email: "b@x.co", Need: "sensors"})
	assert.Equal(t, "sensors", lead.Message)
	assert.Equal(t, map[string]string{"need": "sensors"}, lead.Metadata)

	lead = NewContactLead(validation.ContactInput{FirstName: "Bob", LastName: "J", Email: "b@x.co", Need: "sensors", Message: "call me", Timeline: "immediate"})
	assert.Equal(t, "call me", lead.Message)
	assert.Equal(t, map[string]string{"need": "sensors", "timeline": "immediate"}, lead.Metadata)
}

func TestMetadataNilWhenEmpty(t *testing.T) {
	assert.Nil(t, NewQuoteLead(validation.QuoteInput{}).Metadata)
	assert.Nil(t, NewDemoLead(validation.DemoInput{}).Metadata)
}

func TestConfirmationLabel(t *testing.T) {
	assert.Equal(t, "quote request", KindQuote.ConfirmationLabel())
	assert.Equal(t, "demo booking", KindDemo.ConfirmationLabel())
	assert.Equal(t, "contact request", KindContact.ConfirmationLabel())
}
