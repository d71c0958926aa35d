package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"earnings-analyzer/internal/app"
	"earnings-analyzer/internal/transport/http/response"
)

type InsightHandler struct {
	insightService *app.InsightService
}

type TopicsRequest struct {
	Section    string `json:"section" binding:"required,oneof=opening qa"`
	MaxTopics  int    `json:"max_topics" binding:"omitempty,min=1,max=10"`
	Regenerate bool   `json:"regenerate"`
}

type SummariesRequest struct {
	Section string   `json:"section" binding:"required,oneof=opening qa"`
	Topics  []string `json:"topics" binding:"required,min=1,max=10"`
}

func NewInsightHandler(insightService *app.InsightService) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

func (h *InsightHandler) Topics(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	var req TopicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	topics, err := h.insightService.Topics(c.Request.Context(), app.TopicsInput{
		AnalystID:    analystID,
		TranscriptID: transcriptID,
		Section:      req.Section,
		MaxTopics:    req.MaxTopics,
		Regenerate:   req.Regenerate,
	})
	if err != nil {
		writeServiceError(c, err, "extract topics failed")
		return
	}
	response.OK(c, gin.H{"section": req.Section, "topics": topics})
}

func (h *InsightHandler) Summaries(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	var req SummariesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	summaries, err := h.insightService.Summaries(c.Request.Context(), app.SummariesInput{
		AnalystID:    analystID,
		TranscriptID: transcriptID,
		Section:      req.Section,
		Topics:       req.Topics,
	})
	if err != nil {
		writeServiceError(c, err, "summarize topics failed")
		return
	}
	response.OK(c, gin.H{"section": req.Section, "summaries": summaries})
}
