package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to a status and the usual error body.
func respondError(c *gin.Context, lg *slog.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": verr.Error()})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
	case errors.Is(err, models.ErrEmployeeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found", "message": "Employee not found"})
	case errors.Is(err, models.ErrDuplicateSubmission):
		c.JSON(http.StatusConflict, gin.H{"error": "already submitted", "message": "You have already submitted for today!"})
	case errors.Is(err, models.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": "employeeId already exists"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin secret"})
	case errors.Is(err, models.ErrStorageUnavailable):
		lg.Error("storage unavailable", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable, try again later"})
	default:
		lg.Error("request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
