package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"earnings-analyzer/internal/app"
	"earnings-analyzer/internal/pkg/pdfextract"
	"earnings-analyzer/internal/transport/http/response"
)

type TranscriptHandler struct {
	transcriptService *app.TranscriptService
	maxUploadBytes    int64
}

func NewTranscriptHandler(transcriptService *app.TranscriptService, maxUploadMB int) *TranscriptHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &TranscriptHandler{
		transcriptService: transcriptService,
		maxUploadBytes:    int64(maxUploadMB) << 20,
	}
}

// Upload accepts a multipart form with "file" (PDF) and optional "name".
func (h *TranscriptHandler) Upload(c *gin.Context) {
	analystID, ok := getAnalystIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file")
		return
	}
	if file.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge,
			fmt.Sprintf("file too large (max %dMB)", h.maxUploadBytes>>20))
		return
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".pdf" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "only PDF files are allowed")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "failed to read file")
		return
	}
	defer f.Close()

	pages, err := pdfextract.ReadPages(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to extract text from PDF: "+err.Error())
		return
	}
	if len(pages) == 0 {
		response.Error(c, http.StatusUnprocessableEntity, response.CodeEmptyTranscript, "PDF contains no pages")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = file.Filename
	}

	t, err := h.transcriptService.Upload(c.Request.Context(), app.UploadInput{
		AnalystID: analystID,
		Name:      name,
		Pages:     pages,
	})
	if err != nil {
		writeServiceError(c, err, "process transcript failed")
		return
	}
	response.OK(c, t)
}

func (h *TranscriptHandler) LoadDemo(c *gin.Context) {
	analystID, ok := getAnalystIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}
	t, err := h.transcriptService.LoadDemo(c.Request.Context(), analystID)
	if err != nil {
		writeServiceError(c, err, "load demo transcript failed")
		return
	}
	response.OK(c, t)
}

func (h *TranscriptHandler) List(c *gin.Context) {
	analystID, ok := getAnalystIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}
	list, err := h.transcriptService.List(analystID)
	if err != nil {
		writeServiceError(c, err, "list transcripts failed")
		return
	}
	response.OK(c, list)
}

func (h *TranscriptHandler) Get(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	detail, err := h.transcriptService.Get(analystID, transcriptID)
	if err != nil {
		writeServiceError(c, err, "get transcript failed")
		return
	}
	response.OK(c, detail)
}

func (h *TranscriptHandler) Delete(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.transcriptService.Delete(c.Request.Context(), analystID, transcriptID); err != nil {
		writeServiceError(c, err, "delete transcript failed")
		return
	}
	response.OK(c, gin.H{"deleted_transcript_id": transcriptID})
}

func (h *TranscriptHandler) Opening(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	chunks, err := h.transcriptService.Opening(analystID, transcriptID)
	if err != nil {
		writeServiceError(c, err, "load opening remarks failed")
		return
	}
	response.OK(c, gin.H{"chunks": chunks})
}

func (h *TranscriptHandler) QA(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	view, err := h.transcriptService.QA(analystID, transcriptID)
	if err != nil {
		writeServiceError(c, err, "load q&a session failed")
		return
	}
	response.OK(c, view)
}

// Index reports the retrieval index; ?build=true builds it first.
func (h *TranscriptHandler) Index(c *gin.Context) {
	analystID, transcriptID, ok := requestScope(c)
	if !ok {
		return
	}
	build := c.Query("build") == "true"
	stats, err := h.transcriptService.IndexStats(c.Request.Context(), analystID, transcriptID, build)
	if err != nil {
		writeServiceError(c, err, "read index stats failed")
		return
	}
	response.OK(c, stats)
}
