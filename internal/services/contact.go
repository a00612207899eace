package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/events"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/shophub-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ContactService interface {
	Submit(ctx context.Context, claims *models.Claims, req *models.ContactRequest) (*models.ContactMessage, error)
}

type contactService struct {
	repo          repository.ContactRepository
	notifications NotificationService
	publisher     events.Publisher
	supportEmail  string
	policy        *bluemonday.Policy
}

func NewContactService(repo repository.ContactRepository, notifications NotificationService, publisher events.Publisher, supportEmail string) ContactService {
	return &contactService{
		repo:          repo,
		notifications: notifications,
		publisher:     publisher,
		supportEmail:  supportEmail,
		policy:        bluemonday.StrictPolicy(),
	}
}

// Submit stores the message and forwards it to the support inbox. Claims may
// be nil for anonymous visitors.
func (s *contactService) Submit(ctx context.Context, claims *models.Claims, req *models.ContactRequest) (*models.ContactMessage, error) {

	logger := middleware.LoggerFromContext(ctx)

	msg := &models.ContactMessage{
		ID:      uuid.New(),
		Name:    s.clean(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: s.clean(req.Subject),
		Message: s.clean(req.Message),
	}

	if msg.Name == "" || msg.Subject == "" || msg.Message == "" {
		return nil, errors.ValidationError("Message contains no readable text")
	}

	var userID string
	if claims != nil && claims.UserID != "" {
		userID = claims.UserID
		msg.UserID = &userID
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, errors.DatabaseError("Failed to save contact message").WithError(err)
	}

	forward := &models.EmailNotificationRequest{
		Type:    models.NotificationContactForward,
		To:      s.supportEmail,
		ReplyTo: msg.Email,
		Subject: fmt.Sprintf("[Contact] %s", msg.Subject),
		Content: fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
		Metadata: map[string]string{
			"contact_message_id": msg.ID.String(),
		},
	}

	if _, err := s.notifications.SendEmail(ctx, forward); err != nil {
		logger.Warn("Contact message not forwarded", slog.String("contactMessageId", msg.ID.String()), slog.Any("error", err))
	}

	publishEvent(ctx, s.publisher, models.NewEvent(models.EventContactSubmitted, msg.ID.String(), userID, map[string]any{
		"subject": msg.Subject,
	}))

	return msg, nil
}

// clean strips markup. The strict policy escapes entities, which are turned
// back into plain text since nothing here is rendered as HTML.
func (s *contactService) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(value)))
}
