package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/google/uuid"
)

var ErrContactMessageNotFound = errors.New("contact message not found")

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context, page, size int, openOnly bool) ([]*models.ContactMessage, int, error)
	Resolve(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error)
}

type contactRepository struct {
	DB *sql.DB
}

func NewContactRepo(db *sql.DB) ContactRepository {
	return &contactRepository{DB: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO contact_messages (id, name, email, subject, message, user_id, resolved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.UserID).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

// List returns messages newest first. With openOnly, resolved messages are skipped.
func (r *contactRepository) List(ctx context.Context, page, size int, openOnly bool) ([]*models.ContactMessage, int, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	countQuery := `SELECT COUNT(*) FROM contact_messages WHERE ($1 = FALSE OR resolved = FALSE)`
	if err := r.DB.QueryRowContext(dbCtx, countQuery, openOnly).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count contact messages: %w", err)
	}

	offset, ok := utils.PageOffset(page, size, total)
	if !ok {
		return []*models.ContactMessage{}, total, nil
	}

	query := `
		SELECT id, name, email, subject, message, user_id, resolved, created_at, resolved_at
		FROM contact_messages
		WHERE ($1 = FALSE OR resolved = FALSE)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, openOnly, size, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.ContactMessage{}

	for rows.Next() {
		msg, err := scanContactMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact message: %w", err)
		}

		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return messages, total, nil
}

// Resolve marks a message as handled. Resolving twice keeps the first timestamp.
func (r *contactRepository) Resolve(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE contact_messages
		SET resolved = TRUE, resolved_at = COALESCE(resolved_at, NOW())
		WHERE id = $1
		RETURNING id, name, email, subject, message, user_id, resolved, created_at, resolved_at
	`

	msg, err := scanContactMessage(r.DB.QueryRowContext(dbCtx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactMessageNotFound
		}

		return nil, fmt.Errorf("failed to resolve contact message: %w", err)
	}

	return msg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContactMessage(row rowScanner) (*models.ContactMessage, error) {

	var msg models.ContactMessage
	var userID sql.NullString
	var resolvedAt sql.NullTime

	if err := row.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &userID, &msg.Resolved, &msg.CreatedAt, &resolvedAt); err != nil {
		return nil, err
	}

	if userID.Valid {
		msg.UserID = &userID.String
	}

	if resolvedAt.Valid {
		msg.ResolvedAt = &resolvedAt.Time
	}

	return &msg, nil
}
