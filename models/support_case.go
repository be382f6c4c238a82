package models

import (
	"time"
)

type SupportCase struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time            `gorm:"index" json:"created_at"`
	TeamMemberID uint                 `gorm:"not null;index" json:"team_member_id"`
	TeamMember   *TeamMember          `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
	Title        string               `gorm:"not null;size:200" json:"title"`
	Description  string               `gorm:"type:text" json:"description"`
	Status       CaseStatus           `gorm:"not null;size:50;default:Open" json:"status"`
	Priority     Priority             `gorm:"not null;size:20;default:Medium" json:"priority"`
	Customer     string               `gorm:"size:200" json:"customer"`
	ResolvedAt   *time.Time           `json:"resolved_at"`
	Comments     []SupportCaseComment `gorm:"foreignKey:CaseID" json:"comments,omitempty"`
}

type SupportCaseComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	CaseID    uint      `gorm:"not null;index" json:"case_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
}

// SetStatus applies a status change. Entering the terminal set stamps
// ResolvedAt, leaving it clears ResolvedAt, moves within either set keep it.
func (c *SupportCase) SetStatus(next CaseStatus, now time.Time) {
	wasTerminal := c.Status.IsTerminal()
	c.Status = next
	switch {
	case next.IsTerminal() && !wasTerminal:
		resolved := now.UTC()
		c.ResolvedAt = &resolved
	case !next.IsTerminal() && wasTerminal:
		c.ResolvedAt = nil
	}
}
