package models

type TicketModel struct {
	ID            uint   `gorm:"primaryKey"`
	Number        string `gorm:"uniqueIndex;size:50;not null"`
	Title         string `gorm:"size:200;not null"`
	Description   string `gorm:"type:text;not null"`
	Priority      string `gorm:"size:20;not null;index"`
	SectionID     uint   `gorm:"not null;index"`
	FacilityID    uint   `gorm:"not null;index"`
	RaisedByID    uint   `gorm:"not null;index"`
	AssignedToID  *uint  `gorm:"index"`
	Status        string `gorm:"size:20;not null;index"`
	PendingReason string `gorm:"size:500"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: no foreign key constraints or associations; relationships are
	// managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type CommentModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}
