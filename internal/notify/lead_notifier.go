package notify

import (
	"context"
	"fmt"

	"github.com/spurtek/spurtek-leads/internal/leads"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// LeadNotifier emails the sales inbox about new leads and thanks the
// submitter.
type LeadNotifier struct {
	sender     EmailSender
	adminEmail string
	logger     *logging.Logger
}

// NewLeadNotifier returns nil when sender is nil so callers can skip
// notifications entirely.
func NewLeadNotifier(sender EmailSender, adminEmail string, logger *logging.Logger) *LeadNotifier {
	if sender == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadNotifier{sender: sender, adminEmail: adminEmail, logger: logger}
}

// NotifyOperator sends the internal new-lead email. Replies go to the
// submitter.
func (n *LeadNotifier) NotifyOperator(ctx context.Context, lead *leads.Lead) error {
	if n.adminEmail == "" {
		return fmt.Errorf("notify: admin email not configured")
	}
	msg, err := renderOperator(operatorData{
		Kind:      string(lead.Kind),
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Company:   lead.Company,
		Industry:  lead.Industry,
		Message:   lead.Message,
		Details:   lead.Metadata,
	})
	if err != nil {
		return err
	}
	msg.To = n.adminEmail
	msg.ReplyTo = lead.Email
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: operator email: %w", err)
	}
	n.logger.Debug("operator notified", "lead_id", lead.ID, "kind", lead.Kind)
	return nil
}

// ConfirmSubmitter thanks the person who filled in the form.
func (n *LeadNotifier) ConfirmSubmitter(ctx context.Context, lead *leads.Lead) error {
	msg, err := renderConfirmation(confirmationData{
		FirstName: lead.FirstName,
		Label:     lead.Kind.ConfirmationLabel(),
	})
	if err != nil {
		return err
	}
	msg.To = lead.Email
	msg.ToName = lead.FullName()
	if err := n.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: confirmation email: %w", err)
	}
	return nil
}

var _ leads.Notifier = (*LeadNotifier)(nil)
