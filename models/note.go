package models

import (
	"strings"
	"time"
)

type Note struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	Title        string      `gorm:"not null;size:200" json:"title"`
	Content      string      `gorm:"type:text" json:"content"`
	Tags         string      `gorm:"size:500" json:"tags"`
	TeamMemberID *uint       `gorm:"index" json:"team_member_id"`
	TeamMember   *TeamMember `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
}

// TagList splits the comma separated tags, trimming blanks.
func (n *Note) TagList() []string {
	return SplitTags(n.Tags)
}

func SplitTags(tags string) []string {
	var out []string
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
