package router

import (
	"professor-registry/internal/api/handlers"
	"professor-registry/internal/api/middleware"
	"professor-registry/internal/domain/professor"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func NewRouter(professorService professor.Service, healthHandler *handlers.HealthHandler, log logrus.FieldLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS())
	r.Use(gin.Recovery())

	professorHandler := handlers.NewProfessorHandler(professorService)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/ready", healthHandler.ReadinessCheck)
	r.GET("/live", healthHandler.LivenessCheck)

	v1 := r.Group("/api/v1")
	{
		professors := v1.Group("/professors")
		{
			professors.GET("", professorHandler.ListProfessors)
			professors.POST("", professorHandler.CreateProfessor)
			professors.GET("/:id", professorHandler.GetProfessor)
			professors.PUT("/:id", professorHandler.UpdateProfessor)
			professors.DELETE("/:id", professorHandler.DeleteProfessor)

			professors.GET("/:id/events", professorHandler.GetProfessorEvents)
			professors.POST("/:id/events", professorHandler.CreateProfessorEvent)
			professors.DELETE("/:id/events/:eventId", professorHandler.DeleteProfessorEvent)
		}
	}
	return r
}
