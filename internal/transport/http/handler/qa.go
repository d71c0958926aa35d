package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/app"
	"earnings-analyzer/internal/transport/http/response"
)

type QAHandler struct {
	qaService *app.QAService
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	TopK     int    `json:"top_k" binding:"omitempty,min=1,max=20"`
}

func NewQAHandler(qaService *app.QAService) *QAHandler {
	return &QAHandler{qaService: qaService}
}

func (h *QAHandler) Ask(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeInvalidQuestion, analysis.MsgInvalidQuestion)
		return
	}

	result, err := h.qaService.Ask(c.Request.Context(), app.AskInput{
		AnalystID:    analystID,
		TranscriptID: transcriptID,
		Question:     req.Question,
		TopK:         req.TopK,
	})
	if err != nil {
		writeServiceError(c, err, "answer question failed")
		return
	}
	response.OK(c, result)
}

func (h *QAHandler) History(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	items, err := h.qaService.History(analystID, transcriptID, limit)
	if err != nil {
		writeServiceError(c, err, "load q&a history failed")
		return
	}
	response.OK(c, items)
}

// SampleQuestions lists example questions for the ask box.
func SampleQuestions(c *gin.Context) {
	response.OK(c, gin.H{"questions": analysis.SampleQuestions()})
}
