package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/interfaces/http/middleware"
	"cardreg.backend/internal/interfaces/http/response"
	"cardreg.backend/internal/usecases"
)

// ConfirmationHandler handles the stage-three review and finalize
type ConfirmationHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(registrationUsecase *usecases.RegistrationUsecase) *ConfirmationHandler {
	return &ConfirmationHandler{
		registrationUsecase: registrationUsecase,
	}
}

// Show returns the review summary
// GET /register/confirm
func (h *ConfirmationHandler) Show(c *gin.Context) {
	sid := middleware.SessionID(c)
	summary, err := h.registrationUsecase.GetConfirmation(c.Request.Context(), sid)
	if err != nil {
		h.redirectOrFail(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// Confirm finalizes the registration
// POST /register/confirm
func (h *ConfirmationHandler) Confirm(c *gin.Context) {
	sid := middleware.SessionID(c)
	if err := h.registrationUsecase.ConfirmRegistration(c.Request.Context(), sid); err != nil {
		h.redirectOrFail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, successPath)
}

// Success returns the completion payload
// GET /register/success
func (h *ConfirmationHandler) Success(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"message": "Registration completed successfully",
	})
}

// redirectOrFail sends gate failures back to the start of the wizard and
// everything else through the standard error mapping.
func (h *ConfirmationHandler) redirectOrFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrSessionExpired):
		c.Redirect(http.StatusSeeOther, sessionExpiredURL)
	case errors.Is(err, domainerrors.ErrDataValidation):
		c.Redirect(http.StatusSeeOther, dataValidationURL)
	default:
		response.Error(c, err)
	}
}
