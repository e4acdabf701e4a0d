package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spurtek/spurtek-leads/internal/leads"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func sampleLead() *leads.Lead {
	return &leads.Lead{
		ID:        "lead-1",
		Kind:      leads.KindQuote,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@acme.com",
		Company:   "Acme <Aero>",
		Message:   "Need 40 units",
		Metadata:  map[string]string{"productId": "SPX-200"},
	}
}

func TestNewLeadNotifier_NilSender(t *testing.T) {
	assert.Nil(t, NewLeadNotifier(nil, "admin@spurtek.com.pk", nil))
}

func TestNotifyOperator(t *testing.T) {
	sender := &recordingSender{}
	n := NewLeadNotifier(sender, "admin@spurtek.com.pk", nil)

	require.NoError(t, n.NotifyOperator(context.Background(), sampleLead()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "admin@spurtek.com.pk", msg.To)
	assert.Equal(t, "jane@acme.com", msg.ReplyTo)
	assert.Equal(t, "New quote Lead: Jane Doe", msg.Subject)
	assert.Contains(t, msg.HTML, "<strong>Type:</strong> quote")
	assert.Contains(t, msg.HTML, "Acme &lt;Aero&gt;")
	assert.Contains(t, msg.HTML, "<strong>Message:</strong> Need 40 units")
	assert.Contains(t, msg.HTML, "<strong>productId:</strong> SPX-200")
	assert.NotContains(t, msg.HTML, "Phone:")
	assert.Contains(t, msg.Body, "Company: Acme <Aero>")
}

func TestNotifyOperator_OmitsEmptyOptionalFields(t *testing.T) {
	sender := &recordingSender{}
	n := NewLeadNotifier(sender, "admin@spurtek.com.pk", nil)

	lead := &leads.Lead{Kind: leads.KindDemo, FirstName: "Bob", LastName: "Li", Email: "bob@example.com"}
	require.NoError(t, n.NotifyOperator(context.Background(), lead))

	msg := sender.sent[0]
	assert.Equal(t, "New demo Lead: Bob Li", msg.Subject)
	assert.NotContains(t, msg.HTML, "Company:")
	assert.NotContains(t, msg.HTML, "Message:")
}

func TestNotifyOperator_NoAdminAddress(t *testing.T) {
	sender := &recordingSender{}
	n := NewLeadNotifier(sender, "", nil)

	require.Error(t, n.NotifyOperator(context.Background(), sampleLead()))
	assert.Empty(t, sender.sent)
}

func TestConfirmSubmitter(t *testing.T) {
	tests := []struct {
		kind  leads.Kind
		label string
	}{
		{leads.KindContact, "contact request"},
		{leads.KindQuote, "quote request"},
		{leads.KindDemo, "demo booking"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			sender := &recordingSender{}
			n := NewLeadNotifier(sender, "admin@spurtek.com.pk", nil)

			lead := sampleLead()
			lead.Kind = tt.kind
			require.NoError(t, n.ConfirmSubmitter(context.Background(), lead))

			msg := sender.sent[0]
			assert.Equal(t, "jane@acme.com", msg.To)
			assert.Equal(t, "Jane Doe", msg.ToName)
			assert.Equal(t, "Thank you for contacting Spurtek", msg.Subject)
			assert.Contains(t, msg.HTML, "Thank you, Jane!")
			assert.Contains(t, msg.HTML, "We've received your "+tt.label)
			assert.Contains(t, msg.Body, "We've received your "+tt.label+" and will get back to you soon.")
			assert.Contains(t, msg.Body, "24-48 hours")
		})
	}
}

func TestConfirmSubmitter_SendFailureWrapped(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	n := NewLeadNotifier(sender, "admin@spurtek.com.pk", nil)

	err := n.ConfirmSubmitter(context.Background(), sampleLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}
