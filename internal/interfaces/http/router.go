package http

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"maintdesk/internal/application/ticket/usecases"
	"maintdesk/internal/infrastructure/config"
	"maintdesk/internal/infrastructure/repository"
	"maintdesk/internal/infrastructure/services"
	referencehandlers "maintdesk/internal/interfaces/http/handlers/reference"
	tickethandlers "maintdesk/internal/interfaces/http/handlers/ticket"
	"maintdesk/internal/interfaces/http/middleware"
	"maintdesk/internal/interfaces/http/routes"
	"maintdesk/internal/shared/logger"
)

// Router holds the configured gin engine and its handlers.
type Router struct {
	engine           *gin.Engine
	ticketHandler    *tickethandlers.TicketHandler
	referenceHandler *referencehandlers.ReferenceHandler
}

// NewRouter creates a new HTTP router with all dependencies wired against the
// given database connection.
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))

	ticketRepo := repository.NewTicketRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	numberGen := services.NewTicketNumberGenerator(db)

	ticketHandler := tickethandlers.NewTicketHandler(
		usecases.NewListTicketsUseCase(ticketRepo, log),
		usecases.NewCreateTicketUseCase(ticketRepo, numberGen, log),
		usecases.NewUpdateTicketUseCase(ticketRepo, log),
		usecases.NewAddCommentUseCase(ticketRepo, commentRepo, log),
		usecases.NewGetTicketUseCase(ticketRepo, log),
		usecases.NewGetTicketStatsUseCase(ticketRepo, log),
	)
	referenceHandler := referencehandlers.NewReferenceHandler(referenceRepo)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(middleware.Identity())
	routes.SetupTicketRoutes(api, ticketHandler)
	routes.SetupReferenceRoutes(api, referenceHandler)

	return &Router{
		engine:           engine,
		ticketHandler:    ticketHandler,
		referenceHandler: referenceHandler,
	}
}

// Engine returns the underlying gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
