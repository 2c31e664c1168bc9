package handlers

import (
	"log/slog"
	"net/http"

	"attendance-tracker/internal/directory"
	"attendance-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	dir *directory.Directory
	lg  *slog.Logger
}

func NewEmployeeHandler(dir *directory.Directory, lg *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{dir: dir, lg: lg}
}

// GET /api/employee/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.dir.FindByIdentity(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.lg, err)
		return
	}
	c.JSON(http.StatusOK, emp)
}

// POST /api/employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var in models.CreateEmployeeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	emp, err := h.dir.Create(c.Request.Context(), in.ToEmployee())
	if err != nil {
		respondError(c, h.lg, err)
		return
	}
	c.JSON(http.StatusCreated, emp)
}

// GET /api/employees (admin)
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.dir.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.lg, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
