package services

import (
	"errors"
	"fmt"
)

// ErrNoFields is returned by updates whose payload contained no recognized
// field.
var ErrNoFields = errors.New("no valid fields to update")

// ErrHasAnswers blocks deleting a question that answers still reference.
var ErrHasAnswers = errors.New("cannot delete question with existing answers")

// NotFoundError identifies which resource (the target row or a parent
// reference) was missing.
type NotFoundError struct {
	Resource string // "Quiz", "Question", "Answer"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func notFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}
