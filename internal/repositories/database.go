package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	subject     TEXT NOT NULL,
	message     TEXT NOT NULL,
	user_id     TEXT,
	resolved    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	resolved_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_created_at ON contact_messages (created_at DESC);
CREATE TABLE IF NOT EXISTS notifications (
	id            UUID PRIMARY KEY,
	type          TEXT NOT NULL,
	recipient     TEXT NOT NULL,
	subject       TEXT NOT NULL,
	content       TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	metadata      JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type Repository struct {
	DB           *sql.DB
	Contact      ContactRepository
	Notification NotificationRepository
}

// New opens the storefront database. It only holds data the backend services
// do not own: contact messages and the email log.
func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := NewRepository(db)

	if err := repo.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:           db,
		Contact:      NewContactRepo(db),
		Notification: NewNotificationRepo(db),
	}
}

// EnsureSchema creates the storefront tables when missing.
func (p *Repository) EnsureSchema(ctx context.Context) error {

	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
