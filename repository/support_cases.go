package repository

import (
	"context"
	"strings"

	"seteam/models"

	"gorm.io/gorm"
)

type SupportCaseRepository struct {
	db  *gorm.DB
	now Clock
}

type CaseFilter struct {
	Status       models.CaseStatus
	Priority     models.Priority
	TeamMemberID uint
	OpenOnly     bool
}

func (f CaseFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.TeamMemberID != 0 {
		q = q.Where("team_member_id = ?", f.TeamMemberID)
	}
	if f.OpenOnly {
		q = q.Where("status NOT IN ?", models.TerminalCaseStatuses)
	}
	return q
}

// List returns matching cases newest first, with member and comments loaded.
func (r *SupportCaseRepository) List(ctx context.Context, f CaseFilter) ([]models.SupportCase, error) {
	q := withCtx(ctx, r.db).Preload("TeamMember").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc").Order("id asc")
	})
	var cases []models.SupportCase
	err := f.apply(q).Order("created_at desc").Order("id desc").Find(&cases).Error
	return cases, err
}

func (r *SupportCaseRepository) Get(ctx context.Context, id uint) (*models.SupportCase, error) {
	var c models.SupportCase
	q := withCtx(ctx, r.db).Preload("TeamMember").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc").Order("id asc")
	})
	if err := first(q, &c, "support case", id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SupportCaseRepository) ByIDs(ctx context.Context, ids []uint) ([]models.SupportCase, error) {
	var cases []models.SupportCase
	if len(ids) == 0 {
		return cases, nil
	}
	err := withCtx(ctx, r.db).Preload("TeamMember").Where("id IN ?", ids).Order("id asc").Find(&cases).Error
	return cases, err
}

// Create inserts the case. A case created already resolved gets ResolvedAt stamped.
func (r *SupportCaseRepository) Create(ctx context.Context, c *models.SupportCase) error {
	db := withCtx(ctx, r.db)
	if err := requireMember(db, c.TeamMemberID); err != nil {
		return err
	}
	status := c.Status
	if status == "" {
		status = models.CaseOpen
	}
	if c.Priority == "" {
		c.Priority = models.PriorityMedium
	}
	c.Status = models.CaseOpen
	c.ResolvedAt = nil
	c.SetStatus(status, r.now())
	return create(db, c)
}

// Update overwrites the editable fields of case id and applies the status
// transition rule to ResolvedAt. Empty status or priority keeps the stored value.
func (r *SupportCaseRepository) Update(ctx context.Context, id uint, in *models.SupportCase) (*models.SupportCase, error) {
	db := withCtx(ctx, r.db)
	var c models.SupportCase
	if err := first(db, &c, "support case", id); err != nil {
		return nil, err
	}
	if err := requireMember(db, in.TeamMemberID); err != nil {
		return nil, err
	}
	c.Title = in.Title
	c.Description = in.Description
	if in.Priority != "" {
		c.Priority = in.Priority
	}
	c.TeamMemberID = in.TeamMemberID
	c.Customer = in.Customer
	if in.Status != "" {
		c.SetStatus(in.Status, r.now())
	}
	if err := save(db, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SupportCaseRepository) AddComment(ctx context.Context, id uint, comment string) (*models.SupportCaseComment, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, models.NewValidationError("comment is required")
	}
	c := &models.SupportCaseComment{CaseID: id, Comment: comment}
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var sc models.SupportCase
		if err := first(tx, &sc, "support case", id); err != nil {
			return err
		}
		return tx.Create(c).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the case and its comments and unlinks follow-ups pointing at it.
func (r *SupportCaseRepository) Delete(ctx context.Context, id uint) error {
	return withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var c models.SupportCase
		if err := first(tx, &c, "support case", id); err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", id).Delete(&models.SupportCaseComment{}).Error; err != nil {
			return err
		}
		if err := unlinkFollowUps(tx, models.RelatedSupportCase, id); err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
}
