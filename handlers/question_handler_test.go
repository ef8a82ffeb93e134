package handlers_test

import (
	"net/http"
	"testing"

	"quizapi/testutil"
)

func TestCreateQuestion(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	quizID := testutil.CreateQuiz(t, db, "Host quiz")

	w := testutil.DoRequest(t, router, http.MethodPost, "/quiz_questions", map[string]any{
		"quiz_id":       quizID,
		"question_text": "Which river is the longest?",
	})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var question map[string]any
	env := testutil.DecodeData(t, w, &question)
	if env.Message != "Question created successfully" {
		t.Errorf("message = %q", env.Message)
	}
	// Omitted optionals fall back to server defaults.
	if question["question_type"] != "multiple_choice" {
		t.Errorf("question_type = %v, want multiple_choice", question["question_type"])
	}
	if question["time_limit"].(float64) != 30 {
		t.Errorf("time_limit = %v, want 30", question["time_limit"])
	}
}

func TestCreateQuestionMissingQuiz(t *testing.T) {
	router, _ := testutil.SetupRouter(t)

	w := testutil.DoRequest(t, router, http.MethodPost, "/quiz_questions", map[string]any{
		"quiz_id":       999,
		"question_text": "An orphan question",
	})
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if env := testutil.Decode(t, w); env.Message != "Quiz not found" {
		t.Errorf("message = %q, want Quiz not found", env.Message)
	}

	// The rejected question must not have been written.
	w = testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions", nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateQuestionValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing text", map[string]any{"quiz_id": 1}},
		{"missing quiz id", map[string]any{"question_text": "floating"}},
		{"bad type", map[string]any{"quiz_id": 1, "question_text": "q", "question_type": "essay"}},
		{"time limit too high", map[string]any{"quiz_id": 1, "question_text": "q", "time_limit": 301}},
		{"time limit zero", map[string]any{"quiz_id": 1, "question_text": "q", "time_limit": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, db := testutil.SetupRouter(t)
			testutil.CreateQuiz(t, db, "Host quiz")

			w := testutil.DoRequest(t, router, http.MethodPost, "/quiz_questions", tt.body)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			if env := testutil.Decode(t, w); env.Message != "Validation failed" {
				t.Errorf("message = %q, want Validation failed", env.Message)
			}
		})
	}
}

func TestCreateQuestionAggregatesErrors(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	testutil.CreateQuiz(t, db, "Host quiz")

	w := testutil.DoRequest(t, router, http.MethodPost, "/quiz_questions", map[string]any{
		"quiz_id":    "not a number",
		"time_limit": 999,
	})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var messages []string
	testutil.DecodeData(t, w, &messages)
	if len(messages) != 3 { // bad quiz_id, missing question_text, time_limit over max
		t.Errorf("messages = %v, want 3 entries", messages)
	}
}

func TestListQuestionsByQuiz(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	first := testutil.CreateQuiz(t, db, "First")
	second := testutil.CreateQuiz(t, db, "Second")
	testutil.CreateQuestion(t, db, first, "Q one")
	testutil.CreateQuestion(t, db, first, "Q two")
	testutil.CreateQuestion(t, db, second, "Q three")

	for _, param := range []string{"quiz_id", "quizId"} {
		w := testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions?"+param+"=1", nil)
		testutil.AssertStatus(t, w, http.StatusOK)

		var questions []map[string]any
		testutil.DecodeData(t, w, &questions)
		if len(questions) != 2 {
			t.Errorf("?%s=1: len = %d, want 2", param, len(questions))
		}
	}

	w := testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions?quiz_id=999", nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListQuestionsInvalidFilter(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	quizID := testutil.CreateQuiz(t, db, "Host quiz")
	testutil.CreateQuestion(t, db, quizID, "Q one")

	// A supplied but unusable filter matches nothing; it must not fall back
	// to the unfiltered set.
	for _, query := range []string{"quiz_id=abc", "quiz_id=0", "quiz_id=", "quizId=-1"} {
		w := testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions?"+query, nil)
		testutil.AssertStatus(t, w, http.StatusNotFound)
		if env := testutil.Decode(t, w); env.Message != "No questions found" {
			t.Errorf("?%s: message = %q, want No questions found", query, env.Message)
		}
	}
}

func TestUpdateQuestion(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	quizID := testutil.CreateQuiz(t, db, "Host quiz")
	testutil.CreateQuestion(t, db, quizID, "Old wording")

	w := testutil.DoRequest(t, router, http.MethodPut, "/quiz_questions/1", map[string]any{
		"question_text": "New wording",
		"time_limit":    60,
	})
	testutil.AssertStatus(t, w, http.StatusOK)

	var question map[string]any
	testutil.DecodeData(t, w, &question)
	if question["question_text"] != "New wording" || question["time_limit"].(float64) != 60 {
		t.Errorf("question = %v", question)
	}

	// Re-parenting to a quiz that does not exist is refused.
	w = testutil.DoRequest(t, router, http.MethodPut, "/quiz_questions/1", map[string]any{"quiz_id": 999})
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if env := testutil.Decode(t, w); env.Message != "Quiz not found" {
		t.Errorf("message = %q, want Quiz not found", env.Message)
	}
}

func TestDeleteQuestionWithAnswers(t *testing.T) {
	router, db := testutil.SetupRouter(t)
	quizID := testutil.CreateQuiz(t, db, "Host quiz")
	questionID := testutil.CreateQuestion(t, db, quizID, "Guarded question")
	testutil.CreateAnswer(t, db, quizID, questionID, "An option", true)

	w := testutil.DoRequest(t, router, http.MethodDelete, "/quiz_questions/1", nil)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	env := testutil.Decode(t, w)
	if env.Message != "Cannot delete question with existing answers. Delete answers first." {
		t.Errorf("message = %q", env.Message)
	}

	// Both the question and its answer survive the refused delete.
	w = testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions/1", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	w = testutil.DoRequest(t, router, http.MethodGet, "/answers/1", nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = testutil.DoRequest(t, router, http.MethodDelete, "/answers/1", nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	w = testutil.DoRequest(t, router, http.MethodDelete, "/quiz_questions/1", nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if env := testutil.Decode(t, w); env.Message != "Question deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}

	w = testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions/1", nil)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestQuestionInvalidID(t *testing.T) {
	router, _ := testutil.SetupRouter(t)

	w := testutil.DoRequest(t, router, http.MethodGet, "/quiz_questions/abc", nil)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if env := testutil.Decode(t, w); env.Message != "Invalid question ID" {
		t.Errorf("message = %q, want Invalid question ID", env.Message)
	}
}
