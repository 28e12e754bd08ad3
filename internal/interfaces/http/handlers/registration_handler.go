package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/interfaces/http/middleware"
	"cardreg.backend/internal/interfaces/http/response"
	"cardreg.backend/internal/usecases"
)

// Failure notices appended when a stage bounces the visitor back to the start.
const (
	registerPath      = "/register"
	documentPath      = "/register/document"
	confirmPath       = "/register/confirm"
	successPath       = "/register/success"
	sessionExpiredURL = registerPath + "?notice=session-expired"
	dataValidationURL = registerPath + "?notice=data-validation-failed"
)

// RegistrationHandler handles the stage-one registration form
type RegistrationHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationUsecase *usecases.RegistrationUsecase) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUsecase: registrationUsecase,
	}
}

// Show returns the stage-one form payload
// GET /register
func (h *RegistrationHandler) Show(c *gin.Context) {
	opts, err := h.registrationUsecase.GetRegistrationOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	notice := c.Query("notice")
	body := gin.H{
		"countries": opts.Countries,
		"genders":   opts.Genders,
	}
	if notice != "" {
		body["notice"] = notice
	}
	response.Success(c, http.StatusOK, body)
}

// Submit handles the stage-one form post
// POST /register
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var input entities.RegistrationInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	sid := middleware.SessionID(c)
	if _, err := h.registrationUsecase.SubmitRegistration(c.Request.Context(), sid, &input); err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, documentPath)
}
