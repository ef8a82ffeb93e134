package services

import (
	"errors"

	"quizapi/config"
	"quizapi/store"
	"quizapi/validation"
)

type AnswerService struct {
	store  *store.Store
	limits config.Limits
}

func NewAnswerService(st *store.Store, limits config.Limits) *AnswerService {
	return &AnswerService{store: st, limits: limits}
}

var answerColumns = map[string]string{
	"imageUrl": "image_url",
}

// The schema deliberately has no quiz_id field: an answer's quiz_id is
// always derived from its question, never taken from the client.
func (s *AnswerService) schema() validation.Schema {
	return validation.Schema{
		{Name: "question_id", Rule: validation.Rule{
			Type:     validation.Int,
			Required: true,
			Min:      1,
			HasMin:   true,
		}},
		{Name: "answer_text", Rule: validation.Rule{
			Type:     validation.String,
			Required: true,
			MinLen:   1,
			MaxLen:   s.limits.MaxAnswerLength,
		}},
		{Name: "is_correct", Rule: validation.Rule{
			Type:     validation.Bool,
			Required: true,
		}},
		{Name: "imageUrl", Rule: validation.Rule{
			Type:   validation.URL,
			MaxLen: s.limits.MaxURLLength,
		}},
	}
}

// List returns answers filtered by question, by quiz (through the question
// join), or unfiltered.
func (s *AnswerService) List(questionID, quizID uint) ([]map[string]any, error) {
	if quizID > 0 {
		rows, err := s.store.Query(`
			SELECT a.* FROM answers a
			JOIN quiz_questions q ON a.question_id = q.id
			WHERE q.quiz_id = ?
			ORDER BY a.id`, quizID)
		if err != nil {
			return nil, err
		}
		return normalizeRows(rows), nil
	}

	filters := map[string]any{}
	if questionID > 0 {
		filters["question_id"] = questionID
	}
	rows, err := s.store.FindAll(tableAnswers, filters)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (s *AnswerService) Get(id uint) (map[string]any, error) {
	row, err := s.store.FindByID(tableAnswers, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Answer")
	}
	if err != nil {
		return nil, err
	}
	return normalizeRow(row), nil
}

// Create validates the payload, then looks up the parent question and writes
// the answer with the question's quiz_id inside one transaction, so a
// concurrent re-parenting of the question cannot split the two.
func (s *AnswerService) Create(payload map[string]any) (map[string]any, error) {
	clean, err := s.schema().Validate(payload)
	if err != nil {
		return nil, err
	}

	var id uint
	err = s.store.Transaction(func(tx *store.Store) error {
		question, err := tx.FindByID(tableQuestions, toUint(clean["question_id"]))
		if errors.Is(err, store.ErrNotFound) {
			return notFound("Question")
		}
		if err != nil {
			return err
		}

		row := toColumns(clean, answerColumns)
		row["quiz_id"] = toUint(question["quiz_id"])

		id, err = tx.Insert(tableAnswers, row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *AnswerService) Update(id uint, payload map[string]any) (map[string]any, error) {
	exists, err := s.store.Exists(tableAnswers, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Answer")
	}

	clean, err := s.schema().Partial().Validate(payload)
	if err != nil {
		return nil, err
	}
	row := toColumns(clean, answerColumns)
	if len(row) == 0 {
		return nil, ErrNoFields
	}

	err = s.store.Transaction(func(tx *store.Store) error {
		// Moving the answer to another question re-derives quiz_id.
		if questionID, ok := row["question_id"]; ok {
			question, err := tx.FindByID(tableQuestions, toUint(questionID))
			if errors.Is(err, store.ErrNotFound) {
				return notFound("Question")
			}
			if err != nil {
				return err
			}
			row["quiz_id"] = toUint(question["quiz_id"])
		}

		updated, err := tx.Update(tableAnswers, id, row)
		if err != nil {
			return err
		}
		if !updated {
			return notFound("Answer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *AnswerService) Delete(id uint) error {
	deleted, err := s.store.Delete(tableAnswers, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("Answer")
	}
	return nil
}
