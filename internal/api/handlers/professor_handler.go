package handlers

import (
	"net/http"
	"strconv"

	"professor-registry/internal/domain/professor"
	"professor-registry/internal/infrastructure/database"
	"professor-registry/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ProfessorHandler handles professor-related HTTP requests
type ProfessorHandler struct {
	professorService professor.Service
}

// NewProfessorHandler creates a new professor handler
func NewProfessorHandler(professorService professor.Service) *ProfessorHandler {
	return &ProfessorHandler{
		professorService: professorService,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// ListProfessors handles GET /professors
func (h *ProfessorHandler) ListProfessors(c *gin.Context) {
	professors, err := h.professorService.ListProfessors(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    professors,
	})
}

// GetProfessor handles GET /professors/:id
func (h *ProfessorHandler) GetProfessor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.professorService.GetProfessor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    p,
	})
}

// CreateProfessor handles POST /professors
func (h *ProfessorHandler) CreateProfessor(c *gin.Context) {
	var req professor.CreateProfessorRequest
	if !bindAndValidate(c, &req) {
		return
	}

	p, err := h.professorService.CreateProfessor(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Professor created successfully",
		Data:    p,
	})
}

// UpdateProfessor handles PUT /professors/:id
func (h *ProfessorHandler) UpdateProfessor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req professor.UpdateProfessorRequest
	if !bindAndValidate(c, &req) {
		return
	}

	p, err := h.professorService.UpdateProfessor(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Professor updated successfully",
		Data:    p,
	})
}

// DeleteProfessor handles DELETE /professors/:id
func (h *ProfessorHandler) DeleteProfessor(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.professorService.DeleteProfessor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Professor deleted successfully",
	})
}

// GetProfessorEvents handles GET /professors/:id/events
func (h *ProfessorHandler) GetProfessorEvents(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.professorService.GetProfessorWithEvents(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}

// CreateProfessorEvent handles POST /professors/:id/events
func (h *ProfessorHandler) CreateProfessorEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req professor.CreateEventRequest
	if !bindAndValidate(c, &req) {
		return
	}

	event, err := h.professorService.CreateProfessorEvent(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Professor event created successfully",
		Data:    event,
	})
}

// DeleteProfessorEvent handles DELETE /professors/:id/events/:eventId
func (h *ProfessorHandler) DeleteProfessorEvent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}

	if err := h.professorService.DeleteProfessorEvent(c.Request.Context(), id, eventID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Professor event deleted successfully",
	})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 63)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid " + param + " format",
		})
		return 0, false
	}
	return uint(id), true
}

func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return false
	}

	if err := validator.ValidateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})
		return false
	}

	return true
}

// respondError maps the professor error taxonomy onto HTTP status codes.
// Store and driver detail is kept out of the body and recorded on the context for the request log.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	switch {
	case professor.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case database.IsForeignKeyViolation(err):
		status = http.StatusConflict
		message = "Referenced professor does not exist"
	case database.IsConstraintViolation(err):
		status = http.StatusConflict
		message = "Request conflicts with existing data"
	}

	_ = c.Error(err)
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
	})
}
