package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/application/ticket/usecases"
	ticketdomain "maintdesk/internal/domain/ticket"
	"maintdesk/internal/interfaces/http/middleware"
	"maintdesk/internal/shared/errors"
	"maintdesk/internal/shared/logger"
	"maintdesk/internal/shared/utils"
)

type TicketHandler struct {
	listTicketsUC  usecases.ListTicketsExecutor
	createTicketUC usecases.CreateTicketExecutor
	updateTicketUC usecases.UpdateTicketExecutor
	addCommentUC   usecases.AddCommentExecutor
	getTicketUC    usecases.GetTicketExecutor
	getStatsUC     usecases.GetTicketStatsExecutor
	logger         logger.Interface
}

func NewTicketHandler(
	listTicketsUC usecases.ListTicketsExecutor,
	createTicketUC usecases.CreateTicketExecutor,
	updateTicketUC usecases.UpdateTicketExecutor,
	addCommentUC usecases.AddCommentExecutor,
	getTicketUC usecases.GetTicketExecutor,
	getStatsUC usecases.GetTicketStatsExecutor,
) *TicketHandler {
	return &TicketHandler{
		listTicketsUC:  listTicketsUC,
		createTicketUC: createTicketUC,
		updateTicketUC: updateTicketUC,
		addCommentUC:   addCommentUC,
		getTicketUC:    getTicketUC,
		getStatsUC:     getStatsUC,
		logger:         logger.NewLogger(),
	}
}

// ListTickets handles GET /api/tickets. The query parameters are exactly the
// list descriptor encoding, so a descriptor round-trips through the URL
// unchanged.
func (h *TicketHandler) ListTickets(c *gin.Context) {
	q, err := ticketdomain.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError(err.Error()))
		return
	}

	query := usecases.ListTicketsQuery{
		Query:  q,
		Role:   middleware.RoleFromContext(c),
		UserID: middleware.UserIDFromContext(c),
	}

	result, err := h.listTicketsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	cmd := req.ToCommand(middleware.UserIDFromContext(c))

	result, err := h.createTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Ticket created successfully")
}

// GetTicket handles GET /api/tickets/:id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.GetTicketQuery{
		TicketID: ticketID,
		Role:     middleware.RoleFromContext(c),
		UserID:   middleware.UserIDFromContext(c),
	}

	result, err := h.getTicketUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateTicket handles PATCH /api/tickets/:id. The body is a partial patch;
// transitions are validated against the same machine the client uses, so a
// request bypassing the client gets the same answer.
func (h *TicketHandler) UpdateTicket(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var patch ticketdomain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warnw("invalid request body for update ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	cmd := usecases.UpdateTicketCommand{
		TicketID:  ticketID,
		Patch:     patch,
		Role:      middleware.RoleFromContext(c),
		UpdatedBy: middleware.UserIDFromContext(c),
	}

	result, err := h.updateTicketUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket updated successfully", result)
}

// AddComment handles POST /api/tickets/:id/comments
func (h *TicketHandler) AddComment(c *gin.Context) {
	ticketID, err := parseTicketID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add comment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("invalid request body"))
		return
	}

	cmd := usecases.AddCommentCommand{
		TicketID: ticketID,
		AuthorID: middleware.UserIDFromContext(c),
		Text:     req.Text,
	}

	result, err := h.addCommentUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Comment added successfully")
}

// GetStats handles GET /api/tickets/stats
func (h *TicketHandler) GetStats(c *gin.Context) {
	result, err := h.getStatsUC.Execute(c.Request.Context(), usecases.GetTicketStatsQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
