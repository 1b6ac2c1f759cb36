package routes

import (
	"github.com/14kear/polls-api/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(rg *gin.RouterGroup, pollsHandler *handlers.PollsHandler, authHandler *handlers.AuthHandler) {
	{
		rg.GET("/question", pollsHandler.GetQuestions)
		rg.GET("/question/:id", pollsHandler.GetQuestionByID)
		rg.GET("/question/:id/results", pollsHandler.GetQuestionResults)
		rg.GET("/question/:id/choices", pollsHandler.GetChoicesByQuestionID)

		rg.GET("/choice", pollsHandler.GetChoices)
		rg.GET("/choice/:id", pollsHandler.GetChoiceByID)

		rg.POST("/user", authHandler.Register)

		rg.POST("/login", authHandler.Login)
		rg.POST("/refresh", authHandler.Refresh)
		rg.POST("/logout", authHandler.Logout)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, pollsHandler *handlers.PollsHandler, authHandler *handlers.AuthHandler) {
	{
		rg.POST("/question", pollsHandler.CreateQuestion)
		rg.PUT("/question/:id", pollsHandler.UpdateQuestion)
		rg.PATCH("/question/:id", pollsHandler.PatchQuestion)
		rg.DELETE("/question/:id", pollsHandler.DeleteQuestion)

		rg.POST("/choice", pollsHandler.CreateChoice)
		rg.PUT("/choice/:id", pollsHandler.UpdateChoice)
		rg.PATCH("/choice/:id", pollsHandler.PatchChoice)
		rg.DELETE("/choice/:id", pollsHandler.DeleteChoice)

		rg.POST("/answer", pollsHandler.CreateAnswer)
		rg.GET("/answer", pollsHandler.GetAnswers)
		rg.GET("/answer/:id", pollsHandler.GetAnswerByID)
		rg.DELETE("/answer/:id", pollsHandler.DeleteAnswer)

		rg.GET("/user", authHandler.GetUsers)
		rg.GET("/user/:id", authHandler.GetUserByID)
		rg.PUT("/user/:id", authHandler.UpdateUser)
		rg.PATCH("/user/:id", authHandler.PatchUser)
		rg.DELETE("/user/:id", authHandler.DeleteUser)
	}
}
