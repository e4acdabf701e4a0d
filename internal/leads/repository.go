package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository persists intake records. Create methods assign ID and CreatedAt
// and return the stored copy.
type Repository interface {
	CreateLead(ctx context.Context, lead *Lead) (*Lead, error)
	CreateDownload(ctx context.Context, dl *Download) (*Download, error)
	CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error)
}

// InMemoryRepository keeps records in process memory. Selected with
// LEADS_STORE=memory for local runs without Postgres.
type InMemoryRepository struct {
	mu            sync.RWMutex
	leads         map[string]*Lead
	downloads     []*Download
	subscriptions map[string]*Subscription
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads:         make(map[string]*Lead),
		subscriptions: make(map[string]*Subscription),
	}
}

func (r *InMemoryRepository) CreateLead(ctx context.Context, lead *Lead) (*Lead, error) {
	stored := *lead
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.leads[stored.ID] = &stored
	r.mu.Unlock()

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) CreateDownload(ctx context.Context, dl *Download) (*Download, error) {
	stored := *dl
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	r.downloads = append(r.downloads, &stored)
	r.mu.Unlock()

	out := stored
	return &out, nil
}

// CreateSubscription returns the existing subscription when the email has
// already signed up.
func (r *InMemoryRepository) CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error) {
	key := sub.Email

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.subscriptions[key]; ok {
		out := *existing
		return &out, nil
	}
	stored := *sub
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	r.subscriptions[key] = &stored

	out := stored
	return &out, nil
}

// Leads returns every stored lead.
func (r *InMemoryRepository) Leads() []*Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Lead, 0, len(r.leads))
	for _, l := range r.leads {
		cp := *l
		out = append(out, &cp)
	}
	return out
}

// Downloads returns every tracked download in arrival order.
func (r *InMemoryRepository) Downloads() []*Download {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Download, 0, len(r.downloads))
	for _, d := range r.downloads {
		cp := *d
		out = append(out, &cp)
	}
	return out
}

// NullRepository stands in when no database is configured. Every write
// fails with ErrStoreNotConfigured, which puts intake into demo mode.
type NullRepository struct{}

func (NullRepository) CreateLead(context.Context, *Lead) (*Lead, error) {
	return nil, ErrStoreNotConfigured
}

func (NullRepository) CreateDownload(context.Context, *Download) (*Download, error) {
	return nil, ErrStoreNotConfigured
}

func (NullRepository) CreateSubscription(context.Context, *Subscription) (*Subscription, error) {
	return nil, ErrStoreNotConfigured
}

var (
	_ Repository = (*InMemoryRepository)(nil)
	_ Repository = NullRepository{}
)
