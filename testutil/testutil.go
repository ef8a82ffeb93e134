// Package testutil wires a full application instance against an in-memory
// sqlite database so handler tests run without external services.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizapi/config"
	"quizapi/handlers"
	"quizapi/models"
	"quizapi/routes"
	"quizapi/security"
	"quizapi/services"
	"quizapi/store"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB opens a fresh in-memory database with the full schema.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(&models.Quiz{}, &models.Question{}, &models.Answer{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// SetupRouter builds the full router (handlers, services, store) on top of a
// fresh database. The rate limiter is left out so tests drive it explicitly.
func SetupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := SetupDB(t)
	st := store.New(db)
	audit := security.NopLogger()
	limits := config.DefaultLimits()

	quizHandler := handlers.NewQuizHandler(services.NewQuizService(st, limits), audit)
	questionHandler := handlers.NewQuestionHandler(services.NewQuestionService(st, limits), audit)
	answerHandler := handlers.NewAnswerHandler(services.NewAnswerService(st, limits), audit)
	healthHandler := handlers.NewHealthHandler(db)

	router := gin.New()
	routes.SetupRoutes(router, quizHandler, questionHandler, answerHandler, healthHandler)
	return router, db
}

// DoRequest runs one request through the router and records the response.
func DoRequest(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Envelope mirrors the API's {message, data} wrapper with the data left raw
// for per-test decoding.
type Envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Failed to decode envelope: %v. Body: %s", err, w.Body.String())
	}
	return env
}

// DecodeData decodes the envelope's data into v.
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, v any) Envelope {
	t.Helper()
	env := Decode(t, w)
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to decode envelope data: %v. Data: %s", err, env.Data)
	}
	return env
}

// AssertStatus checks the response status code.
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// CreateQuiz seeds a quiz and returns its id.
func CreateQuiz(t *testing.T, db *gorm.DB, title string) uint {
	t.Helper()
	id, err := store.New(db).Insert(models.Quiz{}.TableName(), map[string]any{
		"title":       title,
		"description": "",
	})
	if err != nil {
		t.Fatalf("Failed to seed quiz: %v", err)
	}
	return id
}

// CreateQuestion seeds a question under the given quiz and returns its id.
func CreateQuestion(t *testing.T, db *gorm.DB, quizID uint, text string) uint {
	t.Helper()
	id, err := store.New(db).Insert(models.Question{}.TableName(), map[string]any{
		"quiz_id":       quizID,
		"question_text": text,
		"question_type": "multiple_choice",
		"time_limit":    30,
	})
	if err != nil {
		t.Fatalf("Failed to seed question: %v", err)
	}
	return id
}

// CreateAnswer seeds an answer under the given question and returns its id.
func CreateAnswer(t *testing.T, db *gorm.DB, quizID, questionID uint, text string, correct bool) uint {
	t.Helper()
	id, err := store.New(db).Insert(models.Answer{}.TableName(), map[string]any{
		"quiz_id":     quizID,
		"question_id": questionID,
		"answer_text": text,
		"is_correct":  correct,
	})
	if err != nil {
		t.Fatalf("Failed to seed answer: %v", err)
	}
	return id
}
