package handlers

import (
	"log/slog"
	"net/http"

	"attendance-tracker/internal/ledger"
	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	ledger *ledger.Ledger
	lg     *slog.Logger
}

func NewSubmissionHandler(l *ledger.Ledger, lg *slog.Logger) *SubmissionHandler {
	return &SubmissionHandler{ledger: l, lg: lg}
}

// POST /api/submission
func (h *SubmissionHandler) RecordSubmission(c *gin.Context) {
	var in models.SubmissionDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	emp, err := h.ledger.RecordSubmission(c.Request.Context(), in.EmployeeID, in.Date)
	if err != nil {
		respondError(c, h.lg, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GET /api/submissions/:id
func (h *SubmissionHandler) GetSubmissions(c *gin.Context) {
	dates, err := h.ledger.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.lg, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}
