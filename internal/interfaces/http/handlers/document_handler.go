package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cardreg.backend/internal/domain/entities"
	domainerrors "cardreg.backend/internal/domain/errors"
	"cardreg.backend/internal/interfaces/http/middleware"
	"cardreg.backend/internal/interfaces/http/response"
	"cardreg.backend/internal/usecases"
)

// DocumentHandler handles the stage-two document upload
type DocumentHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(registrationUsecase *usecases.RegistrationUsecase) *DocumentHandler {
	return &DocumentHandler{
		registrationUsecase: registrationUsecase,
	}
}

// Show returns the stage-two form payload
// GET /register/document
func (h *DocumentHandler) Show(c *gin.Context) {
	sid := middleware.SessionID(c)
	opts, err := h.registrationUsecase.GetDocumentOptions(c.Request.Context(), sid)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSessionExpired) {
			c.Redirect(http.StatusSeeOther, sessionExpiredURL)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"documentTypes": opts.DocumentTypes})
}

// Submit handles the multipart document upload
// POST /register/document
func (h *DocumentHandler) Submit(c *gin.Context) {
	input := entities.DocumentUploadInput{
		DocumentType: c.PostForm("documentType"),
	}

	var data []byte
	file, err := c.FormFile("documentFile")
	if err == nil {
		input.FileName = file.Filename
		input.FileSize = file.Size
		input.ContentType = file.Header.Get("Content-Type")

		// Oversized or mistyped uploads fail validation below without
		// the bytes ever being read.
		if file.Size > 0 && file.Size <= entities.MaxDocumentSize && entities.ExtensionAllowed(file.Filename) {
			src, openErr := file.Open()
			if openErr != nil {
				response.Error(c, domainerrors.InternalError(openErr))
				return
			}
			defer src.Close()

			data, err = io.ReadAll(src)
			if err != nil {
				response.Error(c, domainerrors.InternalError(err))
				return
			}
		}
	}

	sid := middleware.SessionID(c)
	if err := h.registrationUsecase.SubmitDocument(c.Request.Context(), sid, &input, data); err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrSessionExpired):
			c.Redirect(http.StatusSeeOther, sessionExpiredURL)
		case errors.Is(err, usecases.ErrDocumentAlreadyAttached):
			c.Redirect(http.StatusSeeOther, confirmPath)
		default:
			response.Error(c, err)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, confirmPath)
}
