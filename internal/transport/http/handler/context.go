package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"earnings-analyzer/internal/app"
	"earnings-analyzer/internal/transport/http/middleware"
	"earnings-analyzer/internal/transport/http/response"
)

func getAnalystIDFromContext(c *gin.Context) (uint, bool) {
	analystIDAny, exists := c.Get(middleware.ContextAnalystIDKey)
	if !exists {
		return 0, false
	}
	analystID, ok := analystIDAny.(uint)
	return analystID, ok
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	s := c.Param(key)
	u, err := strconv.ParseUint(s, 10, 64)
	return uint(u), err
}

// requestScope reads the analyst id from the token and the transcript id from
// the path, writing the error response when either is missing.
func requestScope(c *gin.Context) (analystID, transcriptID uint, ok bool) {
	analystID, ok = getAnalystIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return 0, 0, false
	}
	transcriptID, err := parseUintParam(c, "id")
	if err != nil || transcriptID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid transcript id")
		return 0, 0, false
	}
	return analystID, transcriptID, true
}

// writeServiceError maps app errors to responses; fallback is the message for
// unexpected failures.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrTranscriptNotFound):
		response.Error(c, http.StatusNotFound, response.CodeTranscriptNotFound, err.Error())
	case errors.Is(err, app.ErrDemoNotFound):
		response.Error(c, http.StatusNotFound, response.CodeDemoNotFound, err.Error())
	case errors.Is(err, app.ErrEmptyTranscript):
		response.Error(c, http.StatusUnprocessableEntity, response.CodeEmptyTranscript, err.Error())
	case errors.Is(err, app.ErrInvalidSection):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidSection, err.Error())
	case errors.Is(err, app.ErrInvalidQuestion):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidQuestion, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, fallback)
	}
}
