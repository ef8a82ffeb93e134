package services

import (
	"errors"
	"regexp"

	"quizapi/config"
	"quizapi/store"
	"quizapi/validation"
)

var (
	titlePattern       = regexp.MustCompile(`^[a-zA-Z0-9\s\-.,!?'":&()]+$`)
	descriptionPattern = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?'"-]*$`)
)

type QuizService struct {
	store  *store.Store
	limits config.Limits
}

func NewQuizService(st *store.Store, limits config.Limits) *QuizService {
	return &QuizService{store: st, limits: limits}
}

var quizColumns = map[string]string{
	"imageUrl": "image_url",
}

func (s *QuizService) schema() validation.Schema {
	return validation.Schema{
		{Name: "title", Rule: validation.Rule{
			Type:     validation.String,
			Required: true,
			MinLen:   1,
			MaxLen:   s.limits.MaxTitleLength,
			Pattern:  titlePattern,
		}},
		{Name: "description", Rule: validation.Rule{
			Type:           validation.String,
			MaxLen:         s.limits.MaxDescriptionLength,
			Pattern:        descriptionPattern,
			PatternMessage: "Field 'description' can only contain alphanumeric characters, spaces, and basic punctuation",
		}},
		{Name: "category", Rule: validation.Rule{
			Type:   validation.String,
			MaxLen: s.limits.MaxCategoryLength,
		}},
		{Name: "tags", Rule: validation.Rule{
			Type:   validation.String,
			MaxLen: s.limits.MaxTagsLength,
		}},
		{Name: "imageUrl", Rule: validation.Rule{
			Type:   validation.URL,
			MaxLen: s.limits.MaxURLLength,
		}},
	}
}

// List returns every quiz, optionally filtered by category.
func (s *QuizService) List(category string) ([]map[string]any, error) {
	filters := map[string]any{}
	if category != "" {
		filters["category"] = category
	}
	rows, err := s.store.FindAll(tableQuizzes, filters)
	if err != nil {
		return nil, err
	}
	return normalizeRows(rows), nil
}

func (s *QuizService) Get(id uint) (map[string]any, error) {
	row, err := s.store.FindByID(tableQuizzes, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Quiz")
	}
	if err != nil {
		return nil, err
	}
	return normalizeRow(row), nil
}

func (s *QuizService) Create(payload map[string]any) (map[string]any, error) {
	clean, err := s.schema().Validate(payload)
	if err != nil {
		return nil, err
	}

	row := toColumns(clean, quizColumns)
	if _, ok := row["description"]; !ok {
		row["description"] = ""
	}

	id, err := s.store.Insert(tableQuizzes, row)
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func (s *QuizService) Update(id uint, payload map[string]any) (map[string]any, error) {
	exists, err := s.store.Exists(tableQuizzes, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notFound("Quiz")
	}

	clean, err := s.schema().Partial().Validate(payload)
	if err != nil {
		return nil, err
	}
	row := toColumns(clean, quizColumns)
	if len(row) == 0 {
		return nil, ErrNoFields
	}

	updated, err := s.store.Update(tableQuizzes, id, row)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, notFound("Quiz")
	}
	return s.Get(id)
}

func (s *QuizService) Delete(id uint) error {
	deleted, err := s.store.Delete(tableQuizzes, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("Quiz")
	}
	return nil
}

// GetComplete returns the quiz with its questions, each carrying its answers,
// in question-id then answer-id order as produced by the join.
func (s *QuizService) GetComplete(id uint) (map[string]any, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.Query(`
		SELECT q.id, q.question_text, q.question_type, q.time_limit,
		       q.image_url, q.created_at, q.updated_at,
		       a.id AS answer_id, a.answer_text, a.is_correct
		FROM quiz_questions q
		LEFT JOIN answers a ON q.id = a.question_id
		WHERE q.quiz_id = ?
		ORDER BY q.id, a.id`, id)
	if err != nil {
		return nil, err
	}

	questions := []map[string]any{}
	index := map[uint]int{}
	for _, row := range rows {
		qid := toUint(row["id"])
		pos, seen := index[qid]
		if !seen {
			question := map[string]any{
				"id":            row["id"],
				"question_text": row["question_text"],
				"question_type": row["question_type"],
				"time_limit":    row["time_limit"],
				"imageUrl":      row["image_url"],
				"created_at":    row["created_at"],
				"updated_at":    row["updated_at"],
				"answers":       []map[string]any{},
			}
			questions = append(questions, question)
			pos = len(questions) - 1
			index[qid] = pos
		}

		if row["answer_id"] != nil {
			answers := questions[pos]["answers"].([]map[string]any)
			questions[pos]["answers"] = append(answers, map[string]any{
				"id":          row["answer_id"],
				"answer_text": row["answer_text"],
				"is_correct":  truthy(row["is_correct"]),
			})
		}
	}

	quiz["questions"] = questions
	return quiz, nil
}
