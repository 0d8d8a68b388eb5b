package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/entity"
)

// ProfileHandler serves behavioral-profile reads and updates.
type ProfileHandler struct {
	profiles *usecase.ProfileUseCase
	logger   *zap.Logger
}

// NewProfileHandler creates the profile handler.
func NewProfileHandler(profiles *usecase.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// ProfileRequest is the upsert payload.
type ProfileRequest struct {
	PersonalityType    string   `json:"personalityType"`
	CommunicationStyle string   `json:"communicationStyle"`
	ConversionRate     float64  `json:"conversionRate"`
	EQScore            float64  `json:"eqScore"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
}

type profileView struct {
	UserID             string   `json:"userId"`
	PersonalityType    string   `json:"personalityType"`
	CommunicationStyle string   `json:"communicationStyle"`
	ConversionRate     float64  `json:"conversionRate"`
	EQScore            float64  `json:"eqScore"`
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	UpdatedAt          string   `json:"updatedAt"`
}

// Get handles GET /api/v1/profiles/:user_id.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(profile))
}

// Upsert handles PUT /api/v1/profiles/:user_id.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.Upsert(c.Request.Context(), c.Param("user_id"), usecase.ProfileInput{
		PersonalityType:    req.PersonalityType,
		CommunicationStyle: req.CommunicationStyle,
		ConversionRate:     req.ConversionRate,
		EQScore:            req.EQScore,
		Strengths:          req.Strengths,
		Weaknesses:         req.Weaknesses,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(profile))
}

func toProfileView(p *entity.BehavioralProfile) profileView {
	return profileView{
		UserID:             p.OwnerID(),
		PersonalityType:    p.PersonalityType(),
		CommunicationStyle: p.CommunicationStyle(),
		ConversionRate:     p.ConversionRate(),
		EQScore:            p.EQScore(),
		Strengths:          p.Strengths(),
		Weaknesses:         p.Weaknesses(),
		UpdatedAt:          p.UpdatedAt().UTC().Format(time.RFC3339),
	}
}
