package services

import (
	"errors"

	"quizapi/config"
	"quizapi/models"
	"quizapi/store"
	"quizapi/validation"
)

type QuestionService struct {
	store  *store.Store
	limits config.Limits
}

func NewQuestionService(st *store.Store, limits config.Limits) *QuestionService {
	return &QuestionService{store: st, limits: limits}
}

var questionColumns = map[string]string{
	"imageUrl": "image_url",
}

func (s *QuestionService) schema() validation.Schema {
	return validation.Schema{
		{Name: "quiz_id", Rule: validation.Rule{
			Type:     validation.Int,
			Required: true,
			Min:      1,
			HasMin:   true,
		}},
		{Name: "question_text", Rule: validation.Rule{
			Type:     validation.String,
			Required: true,
			MinLen:   1,
			MaxLen:   s.limits.MaxQuestionLength,
		}},
		{Name: "question_type", Rule: validation.Rule{
			Type:   validation.String,
			MaxLen: s.limits.MaxTypeLength,
			OneOf:  models.QuestionTypes,
		}},
		{Name: "time_limit", Rule: validation.Rule{
			Type:   validation.Int,
			Min:    1,
			HasMin: true,
			Max:    s.limits.MaxTimeLimit,
			HasMax: true,
		}},
		{Name: "imageUrl", Rule: validation.Rule{
			Type:   validation.URL,
			MaxLen: s.limits.MaxURLLength,
		}},
	}
}

// List returns every question, optionally filtered to one quiz.
func (s *QuestionService) List(quizID uint) ([]map[string]any, error) {
	filters := map[string]any{}
	if quizID > 0 {
		filters["quiz_id"] = quizID
	}
	rows, err := s.store.FindAll(tableQuestions, filters)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (s *QuestionService) Get(id uint) (map[string]any, error) {
	row, err := s.store.FindByID(tableQuestions, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Question")
	}
	if err != nil {
		return nil, err
	}
	return normalizeRow(row), nil
}

func (s *QuestionService) Create(payload map[string]any) (map[string]any, error) {
	clean, err := s.schema().Validate(payload)
	if err != nil {
		return nil, err
	}

	quizID := toUint(clean["quiz_id"])
	exists, err := s.store.Exists(tableQuizzes, quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Quiz")
	}

	row := toColumns(clean, questionColumns)
	if _, ok := row["question_type"]; !ok {
		row["question_type"] = "multiple_choice"
	}
	if _, ok := row["time_limit"]; !ok {
		row["time_limit"] = s.limits.DefaultTimeLimit
	}

	id, err := s.store.Insert(tableQuestions, row)
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuestionService) Update(id uint, payload map[string]any) (map[string]any, error) {
	exists, err := s.store.Exists(tableQuestions, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Question")
	}

	clean, err := s.schema().Partial().Validate(payload)
	if err != nil {
		return nil, err
	}

	// A re-parented question must point at an existing quiz.
	if quizID, ok := clean["quiz_id"]; ok {
		exists, err := s.store.Exists(tableQuizzes, toUint(quizID))
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFound("Quiz")
		}
	}

	row := toColumns(clean, questionColumns)
	if len(row) == 0 {
		return nil, ErrNoFields
	}

	updated, err := s.store.Update(tableQuestions, id, row)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, notFound("Question")
	}
	return s.Get(id)
}

// Delete refuses to remove a question while answers still reference it. The
// check and the delete share one transaction so a concurrent answer insert
// cannot slip between them.
func (s *QuestionService) Delete(id uint) error {
	return s.store.Transaction(func(tx *store.Store) error {
		answers, err := tx.FindAll(tableAnswers, map[string]any{"question_id": id})
		if err != nil {
			return err
		}
		if len(answers) > 0 {
			return ErrHasAnswers
		}

		deleted, err := tx.Delete(tableQuestions, id)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound("Question")
		}
		return nil
	})
}
