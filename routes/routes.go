package routes

import (
	"net/http"

	"quizapi/handlers"
	"quizapi/response"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		response.JSON(c, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})
	router.NoRoute(func(c *gin.Context) {
		response.JSON(c, http.StatusNotFound, "Not found", nil)
	})

	quizzes := router.Group("/quizzes")
	{
		quizzes.GET("", quizHandler.List)
		quizzes.POST("", quizHandler.Create)
		quizzes.GET("/:id", quizHandler.Get)
		quizzes.PUT("/:id", quizHandler.Update)
		quizzes.DELETE("/:id", quizHandler.Delete)
	}

	questions := router.Group("/quiz_questions")
	{
		questions.GET("", questionHandler.List)
		questions.POST("", questionHandler.Create)
		questions.GET("/:id", questionHandler.Get)
		questions.PUT("/:id", questionHandler.Update)
		questions.DELETE("/:id", questionHandler.Delete)
	}

	answers := router.Group("/answers")
	{
		answers.GET("", answerHandler.List)
		answers.POST("", answerHandler.Create)
		answers.GET("/:id", answerHandler.Get)
		answers.PUT("/:id", answerHandler.Update)
		answers.DELETE("/:id", answerHandler.Delete)
	}

	router.GET("/quiz_complete/:id", quizHandler.GetComplete)
	router.GET("/db_health", healthHandler.Check)
}
