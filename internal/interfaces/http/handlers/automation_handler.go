package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/internal/application/usecase"
	"github.com/agentdna/agentdna/internal/domain/entity"
	"github.com/agentdna/agentdna/internal/domain/service"
)

// AutomationHandler serves the action-dispatch automation endpoint.
type AutomationHandler struct {
	automation *usecase.AutomationUseCase
	logger     *zap.Logger
}

// NewAutomationHandler creates the automation handler.
func NewAutomationHandler(automation *usecase.AutomationUseCase, logger *zap.Logger) *AutomationHandler {
	return &AutomationHandler{
		automation: automation,
		logger:     logger,
	}
}

// AutomationRequest is the action envelope.
type AutomationRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type scheduleFollowUpPayload struct {
	UserID       string                 `json:"userId"`
	TaskType     string                 `json:"taskType"`
	FollowUpTime time.Time              `json:"followUpTime"`
	CustomerData entity.FollowUpDetails `json:"customerData"`
}

type scoreLeadsPayload struct {
	Leads []service.Lead `json:"leads"`
}

type wellnessPayload struct {
	UserID      string `json:"userId"`
	StressLevel int    `json:"stressLevel"`
	EnergyLevel int    `json:"energyLevel"`
	MoodScore   int    `json:"moodScore"`
}

// Dispatch handles POST /api/v1/automation.
func (h *AutomationHandler) Dispatch(c *gin.Context) {
	var req AutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case "schedule_follow_up":
		h.scheduleFollowUp(c, req.Data)
	case "score_leads":
		h.scoreLeads(c, req.Data)
	case "process_automation_tasks":
		h.processTasks(c)
	case "update_wellness_metrics":
		h.recordWellness(c, req.Data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action: " + req.Action})
	}
}

func (h *AutomationHandler) scheduleFollowUp(c *gin.Context, data json.RawMessage) {
	var payload scheduleFollowUpPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid follow-up payload"})
		return
	}

	task, err := h.automation.ScheduleFollowUp(
		c.Request.Context(), payload.UserID, payload.TaskType, payload.FollowUpTime, payload.CustomerData,
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Follow-up scheduled successfully",
		"taskId":  task.ID,
	})
}

func (h *AutomationHandler) scoreLeads(c *gin.Context, data json.RawMessage) {
	var payload scoreLeadsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid leads payload"})
		return
	}

	scored := h.automation.ScoreLeads(payload.Leads)
	c.JSON(http.StatusOK, gin.H{"scoredLeads": scored})
}

func (h *AutomationHandler) processTasks(c *gin.Context) {
	processed, err := h.automation.ProcessDueTasks(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"processedTasks": processed})
}

func (h *AutomationHandler) recordWellness(c *gin.Context, data json.RawMessage) {
	var payload wellnessPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wellness payload"})
		return
	}

	result, err := h.automation.RecordWellness(
		c.Request.Context(), payload.UserID, payload.StressLevel, payload.EnergyLevel, payload.MoodScore,
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"burnoutRisk":    result.Entry.BurnoutRisk,
		"recommendation": result.Recommendation,
	})
}
