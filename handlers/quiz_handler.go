package handlers

import (
	"net/http"

	"quizapi/response"
	"quizapi/security"
	"quizapi/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	service *services.QuizService
	audit   *security.Logger
}

func NewQuizHandler(service *services.QuizService, audit *security.Logger) *QuizHandler {
	return &QuizHandler{service: service, audit: audit}
}

// List handles GET /quizzes, optionally filtered by ?category=.
func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.service.List(c.Query("category"))
	if err != nil {
		handleError(c, h.audit, "Error fetching quizzes", err)
		return
	}
	if len(quizzes) == 0 {
		response.JSON(c, http.StatusNotFound, "No quizzes found", nil)
		return
	}
	response.JSON(c, http.StatusOK, "Success", quizzes)
}

// Get handles GET /quizzes/:id.
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}
	quiz, err := h.service.Get(id)
	if err != nil {
		handleError(c, h.audit, "Error fetching quiz", err)
		return
	}
	response.JSON(c, http.StatusOK, "Success", quiz)
}

// Create handles POST /quizzes.
func (h *QuizHandler) Create(c *gin.Context) {
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	quiz, err := h.service.Create(payload)
	if err != nil {
		handleError(c, h.audit, "Error creating quiz", err)
		return
	}
	response.JSON(c, http.StatusCreated, "Quiz created successfully", quiz)
}

// Update handles PUT /quizzes/:id with a partial payload.
func (h *QuizHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	quiz, err := h.service.Update(id, payload)
	if err != nil {
		handleError(c, h.audit, "Error updating quiz", err)
		return
	}
	response.JSON(c, http.StatusOK, "Quiz updated successfully", quiz)
}

// Delete handles DELETE /quizzes/:id.
func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		handleError(c, h.audit, "Error deleting quiz", err)
		return
	}
	response.JSON(c, http.StatusOK, "Quiz deleted successfully", nil)
}

// GetComplete handles GET /quiz_complete/:id, the nested quiz document.
func (h *QuizHandler) GetComplete(c *gin.Context) {
	id, ok := parseID(c, "quiz")
	if !ok {
		return
	}
	quiz, err := h.service.GetComplete(id)
	if err != nil {
		handleError(c, h.audit, "Error fetching quiz", err)
		return
	}
	response.JSON(c, http.StatusOK, "Success", quiz)
}
