package models

import (
	"time"
)

type FollowUp struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	Title        string         `gorm:"not null;size:200" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	DueDate      time.Time      `gorm:"not null;type:date;index" json:"due_date"`
	Status       FollowUpStatus `gorm:"not null;size:50;default:Pending" json:"status"`
	Priority     Priority       `gorm:"not null;size:20;default:Medium" json:"priority"`
	RelatedType  RelatedType    `gorm:"size:50" json:"related_type"`
	RelatedID    *uint          `json:"related_id"`
	TeamMemberID *uint          `gorm:"index" json:"team_member_id"`
	TeamMember   *TeamMember    `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
}

// RelatedRef is the optional link from a follow-up to another record.
// The zero value means "not linked".
type RelatedRef struct {
	Type RelatedType
	ID   uint
}

func (r RelatedRef) IsZero() bool {
	return r.Type == RelatedNone
}

func (f *FollowUp) Related() RelatedRef {
	if f.RelatedType == RelatedNone || f.RelatedID == nil {
		return RelatedRef{}
	}
	return RelatedRef{Type: f.RelatedType, ID: *f.RelatedID}
}

func (f *FollowUp) SetRelated(ref RelatedRef) {
	if ref.IsZero() {
		f.RelatedType = RelatedNone
		f.RelatedID = nil
		return
	}
	id := ref.ID
	f.RelatedType = ref.Type
	f.RelatedID = &id
}

// Complete marks the follow-up done whatever its current status.
func (f *FollowUp) Complete() {
	f.Status = FollowUpCompleted
}

// IsOverdue is true for open follow-ups due strictly before today.
func (f *FollowUp) IsOverdue(today time.Time) bool {
	return f.Status.IsOpen() && f.DueDate.Before(DateOf(today))
}

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
