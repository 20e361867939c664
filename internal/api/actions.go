package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dearbird/muddery/internal/combat"
	"github.com/dearbird/muddery/internal/constants"
)

// ActionRequest is one "cast skill" submission. TargetID may be empty for
// self-targeted skills.
type ActionRequest struct {
	CasterID string `json:"caster_id"`
	SkillKey string `json:"skill_key"`
	TargetID string `json:"target_id"`
}

// SubmitAction forwards one combat action into the encounter's session.
// Actions landing after the fight ended are accepted and dropped; that
// race is part of the protocol, not a client error.
func (h *EncounterHandler) SubmitAction(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CasterID == "" || req.SkillKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	if err := enc.Session.SubmitAction(req.SkillKey, req.CasterID, req.TargetID); err != nil {
		if errors.Is(err, combat.ErrActorNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrActorNotFound})
			return
		}
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyMessage: "Action resolved",
		"finished":               enc.Session.Finished(),
	})
}

// EscapeRequest identifies the actor leaving the fight.
type EscapeRequest struct {
	ActorID string `json:"actor_id"`
}

// Escape removes the actor through the escape path: one escaped
// notification, immediate release, no end-condition re-check.
func (h *EncounterHandler) Escape(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	var req EscapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := enc.Session.Escape(req.ActorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrActorNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Escaped"})
}

// Leave removes the actor through the non-escape departure path
// (disconnects and the like); unlike Escape this re-checks whether the
// fight is over.
func (h *EncounterHandler) Leave(c *gin.Context) {
	enc, err := h.reg.Get(c.Param("encounterID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrEncounterNotFound})
		return
	}
	var req EscapeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ActorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if err := enc.Session.RemoveActor(req.ActorID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrActorNotFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Left encounter"})
}
