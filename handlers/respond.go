package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizapi/response"
	"quizapi/security"
	"quizapi/services"
	"quizapi/validation"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body into a loose payload map. Unknown fields
// are simply never read by the schemas.
func bindJSON(c *gin.Context) (map[string]any, bool) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil || payload == nil {
		response.JSON(c, http.StatusBadRequest, "Invalid JSON data", nil)
		return nil, false
	}
	return payload, true
}

func parseID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.JSON(c, http.StatusBadRequest, "Invalid "+resource+" ID", nil)
		return 0, false
	}
	return uint(id), true
}

// handleError translates service failures into the envelope taxonomy and
// writes the matching audit lines. failMessage covers the 500 branch.
func handleError(c *gin.Context, audit *security.Logger, failMessage string, err error) {
	var secErr *validation.SecurityError
	var fieldErrs validation.Errors
	var nf *services.NotFoundError

	switch {
	case errors.As(err, &secErr):
		audit.SecurityViolation(c.ClientIP(), secErr.Kind, secErr.Field, secErr.Value)
		response.JSON(c, http.StatusForbidden, "Security violation", "Request blocked for security reasons")

	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			audit.InvalidInput(c.ClientIP(), fe.Field, fe.Value, fe.Message)
		}
		response.JSON(c, http.StatusBadRequest, "Validation failed", fieldErrs.Messages())

	case errors.As(err, &nf):
		response.JSON(c, http.StatusNotFound, nf.Error(), nil)

	case errors.Is(err, services.ErrNoFields):
		response.JSON(c, http.StatusBadRequest, "No valid fields to update", nil)

	case errors.Is(err, services.ErrHasAnswers):
		response.JSON(c, http.StatusBadRequest,
			"Cannot delete question with existing answers. Delete answers first.", nil)

	default:
		// Store failures stay out of the response body.
		audit.DatabaseError(err)
		response.JSON(c, http.StatusInternalServerError, failMessage, "Internal server error")
	}
}
