package handlers

import (
	"net/http"

	"quizapi/response"
	"quizapi/security"
	"quizapi/services"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	service *services.AnswerService
	audit   *security.Logger
}

func NewAnswerHandler(service *services.AnswerService, audit *security.Logger) *AnswerHandler {
	return &AnswerHandler{service: service, audit: audit}
}

// List handles GET /answers, optionally filtered by ?question_id= or
// ?quiz_id= (the latter joining through the questions table).
func (h *AnswerHandler) List(c *gin.Context) {
	questionID, byQuestion := queryID(c, "question_id", "questionId")
	quizID, byQuiz := queryID(c, "quiz_id", "quizId")
	if (byQuestion && questionID == 0) || (byQuiz && quizID == 0) {
		response.JSON(c, http.StatusNotFound, "No answers found", nil)
		return
	}

	answers, err := h.service.List(questionID, quizID)
	if err != nil {
		handleError(c, h.audit, "Error fetching answers", err)
		return
	}
	if len(answers) == 0 {
		response.JSON(c, http.StatusNotFound, "No answers found", nil)
		return
	}
	response.JSON(c, http.StatusOK, "Success", answers)
}

// Get handles GET /answers/:id.
func (h *AnswerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "answer")
	if !ok {
		return
	}
	answer, err := h.service.Get(id)
	if err != nil {
		handleError(c, h.audit, "Error fetching answer", err)
		return
	}
	response.JSON(c, http.StatusOK, "Success", answer)
}

// Create handles POST /answers. The referenced question must exist; the
// stored quiz_id comes from that question, not the payload.
func (h *AnswerHandler) Create(c *gin.Context) {
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	answer, err := h.service.Create(payload)
	if err != nil {
		handleError(c, h.audit, "Error creating answer", err)
		return
	}
	response.JSON(c, http.StatusCreated, "Answer created successfully", answer)
}

// Update handles PUT /answers/:id with a partial payload.
func (h *AnswerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "answer")
	if !ok {
		return
	}
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	answer, err := h.service.Update(id, payload)
	if err != nil {
		handleError(c, h.audit, "Error updating answer", err)
		return
	}
	response.JSON(c, http.StatusOK, "Answer updated successfully", answer)
}

// Delete handles DELETE /answers/:id.
func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "answer")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		handleError(c, h.audit, "Error deleting answer", err)
		return
	}
	response.JSON(c, http.StatusOK, "Answer deleted successfully", nil)
}
