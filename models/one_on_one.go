package models

import (
	"time"
)

type OneOnOne struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	TeamMemberID uint        `gorm:"not null;index" json:"team_member_id"`
	TeamMember   *TeamMember `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
	Date         time.Time   `gorm:"not null;type:date" json:"date"`
	Notes        string      `gorm:"type:text" json:"notes"`
	ActionItems  string      `gorm:"type:text" json:"action_items"`
	Mood         Mood        `gorm:"size:20" json:"mood"`
}

func (OneOnOne) TableName() string {
	return "one_on_ones"
}
