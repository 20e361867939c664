package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dearbird/muddery/internal/constants"
)

// ListCharacters returns every stored character template with its skills.
func (h *EncounterHandler) ListCharacters(c *gin.Context) {
	templates, err := h.repo.ListCharacterTemplates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCharacters})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// ListSkills returns every stored skill.
func (h *EncounterHandler) ListSkills(c *gin.Context) {
	skills, err := h.repo.ListSkills()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchSkills})
		return
	}
	c.JSON(http.StatusOK, skills)
}
