package app

import (
	"guidesphere_backend/docs"
	"guidesphere_backend/internal/config"
	"guidesphere_backend/internal/middleware"
	"guidesphere_backend/internal/model"
	"guidesphere_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.GET("/courses/:courseId/rating", middleware.TryAuthMiddleware(cfg), c.rating.Get)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		// bank-backed exams
		authed.POST("/exams/generate", c.exam.Generate)
		authed.POST("/exams/submit", c.exam.Submit)

		// generated quizzes
		authed.GET("/exam/by-content/:contentId", c.quiz.GetByContent)
		authed.POST("/exam/submit", c.quiz.Submit)

		authed.GET("/certificates/me", c.certificate.ListMine)
		authed.POST("/courses/:courseId/evaluation-options", c.evaluation.BuildOptions)
		authed.POST("/courses/:courseId/rating", c.rating.Rate)

		professor := authed.Group("")
		professor.Use(middleware.RoleMiddleware(model.Professor))
		{
			professor.POST("/materials/:materialId/questions", c.exam.AddBankItem)
			professor.POST("/exam/from-document/:docId", c.generation.FromDocument)
			professor.POST("/exam/from-video/:contentId", c.generation.FromVideo)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/stats", c.stats.Overview)
		}
	}
}
