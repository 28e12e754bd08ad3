package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cardreg.backend/internal/interfaces/http/response"
	"cardreg.backend/internal/usecases"
)

// OptionsHandler exposes form reference data
type OptionsHandler struct {
	registrationUsecase *usecases.RegistrationUsecase
}

// NewOptionsHandler creates a new options handler
func NewOptionsHandler(registrationUsecase *usecases.RegistrationUsecase) *OptionsHandler {
	return &OptionsHandler{
		registrationUsecase: registrationUsecase,
	}
}

// ListByGroup returns the active options of one control group
// GET /api/v1/options/:group
func (h *OptionsHandler) ListByGroup(c *gin.Context) {
	group := c.Param("group")
	controls, err := h.registrationUsecase.ListOptions(c.Request.Context(), group)
	if err != nil {
		response.Error(c, err)
		return
	}

	options := make([]gin.H, 0, len(controls))
	for _, ctrl := range controls {
		options = append(options, gin.H{
			"optionValue":  ctrl.OptionValue,
			"displayText":  ctrl.DisplayText,
			"displayOrder": ctrl.DisplayOrder,
		})
	}
	response.Success(c, http.StatusOK, gin.H{
		"group":   group,
		"options": options,
	})
}
