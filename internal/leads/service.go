package leads

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/spurtek/spurtek-leads/internal/observability/metrics"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

var tracer = otel.Tracer("spurtek.internal.leads")

const (
	// DemoModeID is returned in place of a record id when nothing was stored.
	DemoModeID = "demo-mode"

	DemoModeMessage = "Demo mode: Database not configured. Form submitted successfully but not saved."
)

// Notifier sends lead emails. Each call is independent.
type Notifier interface {
	NotifyOperator(ctx context.Context, lead *Lead) error
	ConfirmSubmitter(ctx context.Context, lead *Lead) error
}

// Receipt is what a submitter is told about their submission.
type Receipt struct {
	ID        string
	Persisted bool
	Message   string
}

func degradedReceipt() Receipt {
	return Receipt{ID: DemoModeID, Message: DemoModeMessage}
}

// Service runs the persist and notify steps of intake. Both steps are
// best-effort: failures are logged and never surface to the caller.
type Service struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
}

// NewService wires intake. A nil repo behaves like NullRepository and a nil
// notifier disables email.
func NewService(repo Repository, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		repo = NullRepository{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, notifier: notifier, metrics: m, logger: logger}
}

// SubmitLead stores lead and then notifies the operator and the submitter.
// Notifications go out even when storage failed.
func (s *Service) SubmitLead(ctx context.Context, lead *Lead) Receipt {
	kind := string(lead.Kind)
	ctx, span := tracer.Start(ctx, "leads.submit")
	defer span.End()
	span.SetAttributes(attribute.String("lead.kind", kind))

	start := time.Now()
	defer func() { s.metrics.ObserveLatency(kind, time.Since(start).Seconds()) }()

	receipt := degradedReceipt()
	stored, err := s.repo.CreateLead(ctx, lead)
	if err != nil {
		s.logger.Error("failed to store lead", "error", err, "kind", kind)
		s.metrics.ObserveDegraded(kind, "store")
		span.SetAttributes(attribute.Bool("lead.persisted", false))
		stored = lead
	} else {
		receipt = Receipt{ID: stored.ID, Persisted: true}
		s.logger.Info("lead created", "id", stored.ID, "kind", kind)
		span.SetAttributes(attribute.Bool("lead.persisted", true))
	}

	s.notify(ctx, stored)

	outcome := "created"
	if !receipt.Persisted {
		outcome = "demo_mode"
	}
	s.metrics.ObserveSubmission(kind, outcome)
	return receipt
}

func (s *Service) notify(ctx context.Context, lead *Lead) {
	if s.notifier == nil {
		return
	}
	kind := string(lead.Kind)
	if err := s.notifier.NotifyOperator(ctx, lead); err != nil {
		s.logger.Error("failed to send operator notification", "error", err, "kind", kind)
		s.metrics.ObserveDegraded(kind, "email")
	}
	if err := s.notifier.ConfirmSubmitter(ctx, lead); err != nil {
		s.logger.Error("failed to send confirmation email", "error", err, "kind", kind)
		s.metrics.ObserveDegraded(kind, "email")
	}
}

// TrackDownload records a resource download. It never notifies.
func (s *Service) TrackDownload(ctx context.Context, dl *Download) Receipt {
	ctx, span := tracer.Start(ctx, "leads.track_download")
	defer span.End()
	span.SetAttributes(attribute.String("download.resource_type", dl.ResourceType))

	stored, err := s.repo.CreateDownload(ctx, dl)
	if err != nil {
		s.logger.Error("failed to track download", "error", err, "resource", dl.ResourceSlug)
		s.metrics.ObserveDegraded("download", "store")
		s.metrics.ObserveSubmission("download", "demo_mode")
		return degradedReceipt()
	}
	s.metrics.ObserveSubmission("download", "created")
	return Receipt{ID: stored.ID, Persisted: true}
}

// Subscribe adds email to the newsletter list. Repeat signups return the
// existing subscription.
func (s *Service) Subscribe(ctx context.Context, sub *Subscription) Receipt {
	ctx, span := tracer.Start(ctx, "leads.subscribe")
	defer span.End()

	stored, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		s.logger.Error("failed to store subscription", "error", err)
		s.metrics.ObserveDegraded("newsletter", "store")
		s.metrics.ObserveSubmission("newsletter", "demo_mode")
		return degradedReceipt()
	}
	s.metrics.ObserveSubmission("newsletter", "created")
	return Receipt{ID: stored.ID, Persisted: true}
}
