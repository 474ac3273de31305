package routes

import (
	"github.com/gin-gonic/gin"

	referencehandlers "maintdesk/internal/interfaces/http/handlers/reference"
)

func SetupReferenceRoutes(api *gin.RouterGroup, handler *referencehandlers.ReferenceHandler) {
	api.GET("/sections", handler.ListSections)
	api.GET("/facilities", handler.ListFacilities)
	api.GET("/technicians", handler.ListTechnicians)
	api.GET("/users", handler.ListUsers)
}
