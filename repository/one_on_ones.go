package repository

import (
	"context"

	"seteam/models"

	"gorm.io/gorm"
)

type OneOnOneRepository struct {
	db *gorm.DB
}

type MeetingFilter struct {
	TeamMemberID uint
}

// List returns meetings newest first, with their member loaded.
func (r *OneOnOneRepository) List(ctx context.Context, f MeetingFilter) ([]models.OneOnOne, error) {
	q := withCtx(ctx, r.db).Preload("TeamMember")
	if f.TeamMemberID != 0 {
		q = q.Where("team_member_id = ?", f.TeamMemberID)
	}
	var meetings []models.OneOnOne
	err := q.Order("date desc").Order("id desc").Find(&meetings).Error
	return meetings, err
}

// Recent returns the latest limit meetings by date.
func (r *OneOnOneRepository) Recent(ctx context.Context, limit int) ([]models.OneOnOne, error) {
	var meetings []models.OneOnOne
	err := withCtx(ctx, r.db).Preload("TeamMember").
		Order("date desc").Order("id desc").Limit(limit).Find(&meetings).Error
	return meetings, err
}

func (r *OneOnOneRepository) Get(ctx context.Context, id uint) (*models.OneOnOne, error) {
	var m models.OneOnOne
	if err := first(withCtx(ctx, r.db).Preload("TeamMember"), &m, "1:1 meeting", id); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *OneOnOneRepository) ByIDs(ctx context.Context, ids []uint) ([]models.OneOnOne, error) {
	var meetings []models.OneOnOne
	if len(ids) == 0 {
		return meetings, nil
	}
	err := withCtx(ctx, r.db).Preload("TeamMember").Where("id IN ?", ids).Order("id asc").Find(&meetings).Error
	return meetings, err
}

func (r *OneOnOneRepository) Create(ctx context.Context, m *models.OneOnOne) error {
	db := withCtx(ctx, r.db)
	if err := requireMember(db, m.TeamMemberID); err != nil {
		return err
	}
	m.Date = models.DateOf(m.Date)
	return create(db, m)
}

func (r *OneOnOneRepository) Update(ctx context.Context, id uint, m *models.OneOnOne) (*models.OneOnOne, error) {
	db := withCtx(ctx, r.db)
	var existing models.OneOnOne
	if err := first(db, &existing, "1:1 meeting", id); err != nil {
		return nil, err
	}
	if err := requireMember(db, m.TeamMemberID); err != nil {
		return nil, err
	}
	existing.TeamMemberID = m.TeamMemberID
	existing.Date = models.DateOf(m.Date)
	existing.Notes = m.Notes
	existing.ActionItems = m.ActionItems
	existing.Mood = m.Mood
	if err := save(db, &existing); err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete removes the meeting and returns it so callers can redirect to its member.
func (r *OneOnOneRepository) Delete(ctx context.Context, id uint) (*models.OneOnOne, error) {
	var m models.OneOnOne
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &m, "1:1 meeting", id); err != nil {
			return err
		}
		if err := unlinkFollowUps(tx, models.RelatedOneOnOne, id); err != nil {
			return err
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
