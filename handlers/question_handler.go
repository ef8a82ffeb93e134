package handlers

import (
	"net/http"
	"strconv"

	"quizapi/response"
	"quizapi/security"
	"quizapi/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	service *services.QuestionService
	audit   *security.Logger
}

func NewQuestionHandler(service *services.QuestionService, audit *security.Logger) *QuestionHandler {
	return &QuestionHandler{service: service, audit: audit}
}

// queryID reads an id-valued query parameter under either of its accepted
// spellings. The second return reports whether any spelling was supplied; a
// supplied value that is not a positive integer comes back as 0 and filters
// to nothing rather than dropping the filter.
func queryID(c *gin.Context, names ...string) (uint, bool) {
	for _, name := range names {
		raw, ok := c.GetQuery(name)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, true
		}
		return uint(id), true
	}
	return 0, false
}

// List handles GET /quiz_questions, optionally filtered by ?quiz_id=.
func (h *QuestionHandler) List(c *gin.Context) {
	quizID, filtered := queryID(c, "quiz_id", "quizId")
	if filtered && quizID == 0 {
		response.JSON(c, http.StatusNotFound, "No questions found", nil)
		return
	}

	questions, err := h.service.List(quizID)
	if err != nil {
		handleError(c, h.audit, "Error fetching questions", err)
		return
	}
	if len(questions) == 0 {
		response.JSON(c, http.StatusNotFound, "No questions found", nil)
		return
	}
	response.JSON(c, http.StatusOK, "Success", questions)
}

// Get handles GET /quiz_questions/:id.
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "question")
	if !ok {
		return
	}
	question, err := h.service.Get(id)
	if err != nil {
		handleError(c, h.audit, "Error fetching question", err)
		return
	}
	response.JSON(c, http.StatusOK, "Success", question)
}

// Create handles POST /quiz_questions. The referenced quiz must exist.
func (h *QuestionHandler) Create(c *gin.Context) {
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	question, err := h.service.Create(payload)
	if err != nil {
		handleError(c, h.audit, "Error creating question", err)
		return
	}
	response.JSON(c, http.StatusCreated, "Question created successfully", question)
}

// Update handles PUT /quiz_questions/:id with a partial payload.
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "question")
	if !ok {
		return
	}
	payload, ok := bindJSON(c)
	if !ok {
		return
	}
	question, err := h.service.Update(id, payload)
	if err != nil {
		handleError(c, h.audit, "Error updating question", err)
		return
	}
	response.JSON(c, http.StatusOK, "Question updated successfully", question)
}

// Delete handles DELETE /quiz_questions/:id. Questions with answers are
// refused until the answers are removed.
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "question")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		handleError(c, h.audit, "Error deleting question", err)
		return
	}
	response.JSON(c, http.StatusOK, "Question deleted successfully", nil)
}
