package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agentdna/agentdna/pkg/errors"
)

// upstreamFailureMessage is what callers see when generation fails. The
// real cause goes to the log, never to the client.
const upstreamFailureMessage = "We're experiencing technical difficulties. Please try again."

// writeError maps an application error onto an HTTP response.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		logger.Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	switch appErr.Code {
	case errors.CodeInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
	case errors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Message})
	case errors.CodeUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": appErr.Message})
	case errors.CodeServiceUnavail:
		logger.Error("Upstream failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": upstreamFailureMessage})
	default:
		logger.Error("Internal error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
