package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSubmitContact(t *testing.T) {
	contactReq := models.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Late delivery",
		Message: "My order has not arrived yet.",
	}

	t.Run("Success - Guest submission", func(t *testing.T) {
		mockContactService := mocks.NewContactService(t)
		contactHandler := handlers.NewContactHandler(mockContactService)

		id := uuid.New()
		mockContactService.On("Submit", mock.Anything, (*models.Claims)(nil), &contactReq).
			Return(&models.ContactMessage{ID: id, Subject: contactReq.Subject}, nil).Once()

		rr := httptest.NewRecorder()
		contactHandler.Submit().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/contact", jsonBody(t, contactReq), nil))

		assert.Equal(t, http.StatusCreated, rr.Code)

		var msg models.ContactMessage
		decodeResponse(t, rr, &msg)
		assert.Equal(t, id, msg.ID)
	})

	t.Run("Success - Signed in user linked", func(t *testing.T) {
		mockContactService := mocks.NewContactService(t)
		contactHandler := handlers.NewContactHandler(mockContactService)

		mockContactService.On("Submit", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool { return c != nil && c.UserID == "u-1" }), &contactReq).
			Return(&models.ContactMessage{ID: uuid.New()}, nil).Once()

		rr := httptest.NewRecorder()
		contactHandler.Submit().ServeHTTP(rr, testutils.CreateTestRequestWithContext(http.MethodPost, "/contact", jsonBody(t, contactReq), "u-1", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Message too short", func(t *testing.T) {
		contactHandler := handlers.NewContactHandler(mocks.NewContactService(t))

		short := contactReq
		short.Message = "Hi"

		rr := httptest.NewRecorder()
		contactHandler.Submit().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/contact", jsonBody(t, short), nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeResponse(t, rr, nil)
		assert.Equal(t, []string{"Field message must be at least 10 characters"}, resp.Error.Details)
	})

	t.Run("Failure - Storage error", func(t *testing.T) {
		mockContactService := mocks.NewContactService(t)
		contactHandler := handlers.NewContactHandler(mockContactService)

		mockContactService.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, appErrors.DatabaseError("Failed to save contact message")).Once()

		rr := httptest.NewRecorder()
		contactHandler.Submit().ServeHTTP(rr, testutils.CreateTestRequestWithoutContext(http.MethodPost, "/contact", jsonBody(t, contactReq), nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
