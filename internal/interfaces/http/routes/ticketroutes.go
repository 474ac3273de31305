package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "maintdesk/internal/interfaces/http/handlers/ticket"
)

func SetupTicketRoutes(api *gin.RouterGroup, handler *tickethandlers.TicketHandler) {
	tickets := api.Group("/tickets")
	{
		tickets.GET("", handler.ListTickets)
		tickets.POST("", handler.CreateTicket)

		// Specific paths before parameterized ones to avoid route conflicts
		tickets.GET("/stats", handler.GetStats)

		tickets.POST("/:id/comments", handler.AddComment)
		tickets.GET("/:id", handler.GetTicket)
		tickets.PATCH("/:id", handler.UpdateTicket)
	}
}
