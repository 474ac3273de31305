package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/application/ticket/usecases"
	"maintdesk/internal/shared/errors"
)

type CreateTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Section     uint   `json:"section" binding:"required"`
	Facility    uint   `json:"facility" binding:"required"`
}

func (r CreateTicketRequest) ToCommand(raisedBy uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		SectionID:   r.Section,
		FacilityID:  r.Facility,
		RaisedBy:    raisedBy,
	}
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func parseTicketID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError("invalid ticket ID")
	}
	return uint(id), nil
}
