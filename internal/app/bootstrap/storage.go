package bootstrap

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	appconfig "github.com/spurtek/spurtek-leads/internal/config"
	"github.com/spurtek/spurtek-leads/internal/leads"
	"github.com/spurtek/spurtek-leads/pkg/logging"
)

// BuildLeadRepository returns the in-memory repository for LEADS_STORE=memory
// and otherwise connects to Postgres when DATABASE_URL is set. Without a
// reachable database it returns the null repository, which puts submissions in
// demo mode. The returned pool is nil in that case; callers close it otherwise.
func BuildLeadRepository(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (leads.Repository, *pgxpool.Pool) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg != nil && cfg.LeadsStore == "memory" {
		logger.Warn("using in-memory lead store, submissions are lost on restart")
		return leads.NewInMemoryRepository(), nil
	}
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Warn("DATABASE_URL not set, submissions will not be persisted")
		return leads.NullRepository{}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to create postgres pool", "error", err)
		return leads.NullRepository{}, nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres not reachable", "error", err)
		pool.Close()
		return leads.NullRepository{}, nil
	}
	logger.Info("postgres connected")
	return leads.NewPostgresRepository(pool), pool
}
