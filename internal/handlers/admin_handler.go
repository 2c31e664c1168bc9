package handlers

import (
	"log/slog"
	"net/http"

	"attendance-tracker/internal/importer"
	"attendance-tracker/internal/middleware"
	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	gate     *middleware.AdminGate
	importer *importer.Importer
	lg       *slog.Logger
}

func NewAdminHandler(gate *middleware.AdminGate, im *importer.Importer, lg *slog.Logger) *AdminHandler {
	return &AdminHandler{gate: gate, importer: im, lg: lg}
}

// AdminAuth checks the admin secret and hands back a short-lived token
// POST /api/admin-auth
func (h *AdminHandler) AdminAuth(c *gin.Context) {
	var input models.AdminAuthRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	if !h.gate.Authenticate(input.SecretKey) {
		h.lg.Warn("admin auth rejected", slog.String("client_ip", c.ClientIP()))
		respondError(c, h.lg, models.ErrUnauthorized)
		return
	}

	token, expiresAt, err := h.gate.Tokens().Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, models.AdminAuthResponse{
		Message:   "Authenticated",
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// UploadEmployees bulk-loads employees from a spreadsheet in the "file"
// form field. 207 signals that some rows failed.
// POST /api/upload-employees
func (h *AdminHandler) UploadEmployees(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload", "details": err.Error()})
		return
	}
	defer f.Close()

	rows, err := importer.ReadRows(f, fh.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse spreadsheet", "details": err.Error()})
		return
	}

	res := h.importer.ImportBatch(c.Request.Context(), rows)

	status, message := http.StatusOK, "Employees imported successfully"
	if res.Partial() {
		status, message = http.StatusMultiStatus, "Employees imported with errors"
	}
	c.JSON(status, models.ImportResponse{
		Message:      message,
		AddedCount:   res.Added,
		UpdatedCount: res.Updated,
		Errors:       res.Errors,
	})
}
