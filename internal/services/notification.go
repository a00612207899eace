package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/shophub-storefront/pkg/sendgrid"
	"github.com/google/uuid"
)

type NotificationService interface {
	SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error)
	ListNotifications(ctx context.Context, page int, size int) (*models.PaginatedResponse, error)
}

type notificationService struct {
	repo         repository.NotificationRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, emailService sendgrid.EmailService) NotificationService {
	return &notificationService{repo: repo, emailService: emailService}
}

// SendEmail logs the email before sending it and records the outcome.
func (n *notificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {

	var metadataJSON json.RawMessage

	if req.Metadata != nil {
		metadataBytes, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}

		metadataJSON = metadataBytes
	}

	now := time.Now()

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      req.Type,
		Recipient: req.To,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.StatusPending,
		Metadata:  metadataJSON,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification record: %w", err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {

		notification.Status = models.StatusFailed
		notification.ErrorMessage = err.Error()

		_ = n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusFailed, notification.ErrorMessage)

		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	notification.Status = models.StatusSent

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, models.StatusSent, ""); err != nil {
		return nil, fmt.Errorf("notification sent successfully but failed to update notification status: %w", err)
	}

	return notification, nil
}

func (n *notificationService) ListNotifications(ctx context.Context, page int, size int) (*models.PaginatedResponse, error) {

	page, size = normalizePage(page, size)

	notifications, total, err := n.repo.ListNotifications(ctx, page, size)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list notifications").WithError(err)
	}

	return models.NewPaginatedResponse(notifications, total, page, size), nil
}
