package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-staking-api/internal/api/shared/errors"
	"github.com/feral-file/ff-staking-api/internal/domain"
	"github.com/feral-file/ff-staking-api/internal/logger"
)

// successResponse is the envelope for successful responses
type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// respondSuccess responds with data wrapped in the success envelope
func respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successResponse{
		Success: true,
		Data:    data,
	})
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, apierrors.NewErrorResponse(message))
}

// respondInternalError logs err and responds with its message
func respondInternalError(c *gin.Context, err error, fields ...zap.Field) {
	logger.ErrorCtx(c.Request.Context(), err, fields...)
	c.JSON(http.StatusInternalServerError, apierrors.NewErrorResponse(err.Error()))
}

// respondWriteError maps errors of the write passthroughs to a status code
func respondWriteError(c *gin.Context, err error, fields ...zap.Field) {
	if errors.Is(err, domain.ErrSignerNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, apierrors.NewErrorResponse(err.Error()))
		return
	}
	respondInternalError(c, err, fields...)
}
