package reference

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/domain/reference"
	"maintdesk/internal/shared/logger"
	"maintdesk/internal/shared/utils"
)

// ReferenceHandler serves the read-only lookup lists the dashboard caches.
type ReferenceHandler struct {
	repo   reference.Repository
	logger logger.Interface
}

func NewReferenceHandler(repo reference.Repository) *ReferenceHandler {
	return &ReferenceHandler{
		repo:   repo,
		logger: logger.NewLogger(),
	}
}

// ListSections handles GET /api/sections
func (h *ReferenceHandler) ListSections(c *gin.Context) {
	sections, err := h.repo.ListSections(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list sections", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", sections)
}

// ListFacilities handles GET /api/facilities
func (h *ReferenceHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.repo.ListFacilities(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list facilities", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", facilities)
}

// ListTechnicians handles GET /api/technicians
func (h *ReferenceHandler) ListTechnicians(c *gin.Context) {
	technicians, err := h.repo.ListTechnicians(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list technicians", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", technicians)
}

// ListUsers handles GET /api/users
func (h *ReferenceHandler) ListUsers(c *gin.Context) {
	users, err := h.repo.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list users", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", users)
}
