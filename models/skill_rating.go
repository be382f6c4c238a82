package models

import (
	"time"
)

// SkillRating is unique per (team member, skill).
type SkillRating struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	TeamMemberID uint        `gorm:"not null;uniqueIndex:uq_member_skill" json:"team_member_id"`
	TeamMember   *TeamMember `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
	Skill        Skill       `gorm:"not null;size:50;uniqueIndex:uq_member_skill" json:"skill"`
	Proficiency  Proficiency `gorm:"not null;size:50" json:"proficiency"`
}

// SkillSet is one member's ratings keyed by skill.
type SkillSet map[Skill]Proficiency

// Level returns the rating for skill, or the default level when unrated.
func (s SkillSet) Level(skill Skill) Proficiency {
	if p, ok := s[skill]; ok && p != "" {
		return p
	}
	return DefaultProficiency
}

// Matches reports whether every filter equals the member's level exactly.
func (s SkillSet) Matches(filters map[Skill]Proficiency) bool {
	for skill, want := range filters {
		if s.Level(skill) != want {
			return false
		}
	}
	return true
}
