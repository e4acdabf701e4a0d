package leads

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores intake records in the relational database.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithExec(exec rowQuerier) *PostgresRepository {
	if exec == nil {
		panic("leads: exec required")
	}
	return &PostgresRepository{pool: exec}
}

// CreateLead inserts a new lead row.
func (r *PostgresRepository) CreateLead(ctx context.Context, lead *Lead) (*Lead, error) {
	var meta []byte
	if len(lead.Metadata) > 0 {
		var err error
		if meta, err = json.Marshal(lead.Metadata); err != nil {
			return nil, fmt.Errorf("leads: encode metadata: %w", err)
		}
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, type, first_name, last_name, email, phone, company, industry, message, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		string(lead.Kind),
		lead.FirstName,
		lead.LastName,
		lead.Email,
		nullable(lead.Phone),
		nullable(lead.Company),
		nullable(lead.Industry),
		nullable(lead.Message),
		meta,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	stored := *lead
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// CreateDownload inserts a download tracking row.
func (r *PostgresRepository) CreateDownload(ctx context.Context, dl *Download) (*Download, error) {
	id := uuid.New()
	query := `
		INSERT INTO downloads (id, resource_slug, resource_type, email, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		dl.ResourceSlug,
		dl.ResourceType,
		nullable(dl.Email),
		nullable(dl.IPAddress),
		nullable(dl.UserAgent),
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert download failed: %w", err)
	}

	stored := *dl
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// CreateSubscription upserts on email so a repeat signup returns the
// original row.
func (r *PostgresRepository) CreateSubscription(ctx context.Context, sub *Subscription) (*Subscription, error) {
	query := `
		INSERT INTO newsletter_subscriptions (id, email, source)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, created_at
	`
	var (
		id        string
		createdAt time.Time
	)
	if err := r.pool.QueryRow(ctx, query,
		uuid.New(),
		sub.Email,
		nullable(sub.Source),
	).Scan(&id, &createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert subscription failed: %w", err)
	}

	stored := *sub
	stored.ID = id
	stored.CreatedAt = createdAt
	return &stored, nil
}

// nullable maps empty optional strings to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repository = (*PostgresRepository)(nil)
