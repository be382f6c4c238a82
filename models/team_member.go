package models

import (
	"time"
)

type TeamMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Email       string    `gorm:"not null;size:100" json:"email"`
	Region      Region    `gorm:"not null;size:50" json:"region"`
	AlignedRep  string    `gorm:"size:100" json:"aligned_rep"`
	AlignedRep2 string    `gorm:"column:aligned_rep_2;size:100" json:"aligned_rep_2"`
	Role        string    `gorm:"size:50;default:SE" json:"role"`
}

const DefaultRole = "SE"

// AlignedReps returns the non-empty aligned reps in order.
func (m *TeamMember) AlignedReps() []string {
	reps := make([]string, 0, 2)
	for _, rep := range []string{m.AlignedRep, m.AlignedRep2} {
		if rep != "" {
			reps = append(reps, rep)
		}
	}
	return reps
}
