// Package repository holds the queries and transactional writes behind every view.
package repository

import (
	"context"
	"errors"
	"time"

	"seteam/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store bundles the per-entity repositories over one database handle.
type Store struct {
	Members       *TeamMemberRepository
	Meetings      *OneOnOneRepository
	Opportunities *OpportunityRepository
	Cases         *SupportCaseRepository
	FollowUps     *FollowUpRepository
	Notes         *NoteRepository
	Skills        *SkillRepository
	Dashboard     *DashboardRepository

	db *gorm.DB
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func New(db *gorm.DB) *Store {
	return NewWithClock(db, time.Now)
}

func NewWithClock(db *gorm.DB, now Clock) *Store {
	meetings := &OneOnOneRepository{db: db}
	followUps := &FollowUpRepository{db: db}
	return &Store{
		Members:       &TeamMemberRepository{db: db},
		Meetings:      meetings,
		Opportunities: &OpportunityRepository{db: db},
		Cases:         &SupportCaseRepository{db: db, now: now},
		FollowUps:     followUps,
		Notes:         &NoteRepository{db: db},
		Skills:        &SkillRepository{db: db},
		Dashboard:     &DashboardRepository{db: db, now: now, meetings: meetings, followUps: followUps},
		db:            db,
	}
}

// DB exposes the underlying handle for health checks and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// first loads one row by id, translating a miss into models.ErrNotFound.
func first(db *gorm.DB, dest interface{}, entity string, id uint) error {
	err := db.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ErrNotFound{Entity: entity, ID: id}
	}
	return err
}

// unlinkFollowUps clears the related link of every follow-up pointing at one
// of ids. ids may be a single id, a slice or a subquery.
func unlinkFollowUps(tx *gorm.DB, t models.RelatedType, ids interface{}) error {
	return tx.Model(&models.FollowUp{}).
		Where("related_type = ? AND related_id IN (?)", t, ids).
		Updates(map[string]interface{}{"related_type": models.RelatedNone, "related_id": nil}).Error
}

// requireMember fails with a validation error when the member does not exist.
func requireMember(db *gorm.DB, id uint) error {
	var count int64
	if err := db.Model(&models.TeamMember{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.NewValidationErrorf("team member %d does not exist", id)
	}
	return nil
}

// requireOptionalMember is requireMember for nullable references.
func requireOptionalMember(db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	return requireMember(db, *id)
}

// save writes the row without cascading into loaded associations.
func save(db *gorm.DB, value interface{}) error {
	return db.Omit(clause.Associations).Save(value).Error
}

func create(db *gorm.DB, value interface{}) error {
	return db.Omit(clause.Associations).Create(value).Error
}

func withCtx(ctx context.Context, db *gorm.DB) *gorm.DB {
	if ctx == nil {
		return db
	}
	return db.WithContext(ctx)
}
