package repository_test

import (
	"database/sql"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contactColumns = []string{"id", "name", "email", "subject", "message", "user_id", "resolved", "created_at", "resolved_at"}

func setupContactRepoTest(t *testing.T) (repository.ContactRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewContactRepo(db), mock
}

func TestContactRepository_Create(t *testing.T) {
	ctx := t.Context()
	userID := "user-42"

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupContactRepoTest(t)
		created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		msg := &models.ContactMessage{
			ID:      uuid.New(),
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Subject: "Where is my order",
			Message: "It has been two weeks already.",
			UserID:  &userID,
		}

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contact_messages`)).
			WithArgs(msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.UserID).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

		// Act
		err := repo.Create(ctx, msg)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, created, msg.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		repo, mock := setupContactRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO contact_messages`)).
			WillReturnError(errors.New("duplicate key"))

		err := repo.Create(ctx, &models.ContactMessage{ID: uuid.New()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create contact message")
	})
}

func TestContactRepository_List(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()

	t.Run("Success - Open messages only", func(t *testing.T) {
		// Arrange
		repo, mock := setupContactRepoTest(t)
		id1, id2 := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contact_messages`)).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
			WithArgs(true, 20, 0).
			WillReturnRows(sqlmock.NewRows(contactColumns).
				AddRow(id1.String(), "Jane", "jane@example.com", "Late order", "Where is it?", "user-1", false, now, nil).
				AddRow(id2.String(), "Guest", "guest@example.com", "Returns", "How do I return?", nil, false, now.Add(-time.Hour), nil))

		// Act
		messages, total, err := repo.List(ctx, 1, 20, true)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, messages, 2)
		require.NotNil(t, messages[0].UserID)
		assert.Equal(t, "user-1", *messages[0].UserID)
		assert.Nil(t, messages[1].UserID)
		assert.Nil(t, messages[1].ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Empty inbox", func(t *testing.T) {
		repo, mock := setupContactRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contact_messages`)).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		messages, total, err := repo.List(ctx, 2, 10, false)

		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Page past the end", func(t *testing.T) {
		repo, mock := setupContactRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contact_messages`)).
			WithArgs(false).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		messages, total, err := repo.List(ctx, math.MaxInt64, 10, false)

		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, messages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Query error", func(t *testing.T) {
		repo, mock := setupContactRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM contact_messages`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM contact_messages`)).
			WillReturnError(sql.ErrConnDone)

		messages, _, err := repo.List(ctx, 1, 10, false)

		require.Error(t, err)
		assert.Nil(t, messages)
		assert.Contains(t, err.Error(), "failed to query contact messages")
	})
}

func TestContactRepository_Resolve(t *testing.T) {
	ctx := t.Context()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupContactRepoTest(t)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE contact_messages SET resolved = TRUE`)).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(contactColumns).
				AddRow(id.String(), "Jane", "jane@example.com", "Late order", "Where is it?", nil, true, now.Add(-time.Hour), now))

		// Act
		msg, err := repo.Resolve(ctx, id)

		// Assert
		require.NoError(t, err)
		assert.True(t, msg.Resolved)
		require.NotNil(t, msg.ResolvedAt)
		assert.Equal(t, now, *msg.ResolvedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		repo, mock := setupContactRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`UPDATE contact_messages`)).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		msg, err := repo.Resolve(ctx, id)

		assert.Nil(t, msg)
		assert.ErrorIs(t, err, repository.ErrContactMessageNotFound)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRepository(db)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS contact_messages`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.EnsureSchema(t.Context())

	require.NoError(t, err)
	assert.NotNil(t, repo.Contact)
	assert.NotNil(t, repo.Notification)
	assert.NoError(t, mock.ExpectationsWereMet())
}
