package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ContactHandler struct {
	contactService service.ContactService
	validator      *validator.Validate
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService, validator: utils.NewValidator()}
}

// Submit godoc
//	@Summary		Send a message to support
//	@Description	Open to guests. Signed-in users have the message linked to their account.
//	@Tags			Contact
//	@Accept			json
//	@Produce		json
//	@Param			message	body		models.ContactRequest	true	"Contact form"
//	@Success		201		{object}	models.ContactMessage
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		500		{object}	response.ErrorResponse	"Message could not be stored"
//	@Router			/contact [post]
func (h *ContactHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact form input")
			return
		}

		claims, _ := middleware.ClaimsFromContext(r.Context())

		msg, err := h.contactService.Submit(r.Context(), claims, &req)
		if err != nil {
			logger.Error("Failed to submit contact message", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Contact message received", slog.String("messageId", msg.ID.String()))
		response.Success(w, http.StatusCreated, msg)
	}
}
