package repository

import (
	"context"
	"time"

	"seteam/models"

	"gorm.io/gorm"
)

type FollowUpRepository struct {
	db *gorm.DB
}

type FollowUpFilter struct {
	Status       models.FollowUpStatus
	Priority     models.Priority
	TeamMemberID uint
	// NotCompleted drops completed follow-ups.
	NotCompleted bool
}

func (f FollowUpFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.TeamMemberID != 0 {
		q = q.Where("team_member_id = ?", f.TeamMemberID)
	}
	if f.NotCompleted {
		q = q.Where("status <> ?", models.FollowUpCompleted)
	}
	return q
}

// List returns matching follow-ups ordered by due date.
func (r *FollowUpRepository) List(ctx context.Context, f FollowUpFilter) ([]models.FollowUp, error) {
	var items []models.FollowUp
	err := f.apply(withCtx(ctx, r.db).Preload("TeamMember")).
		Order("due_date asc").Order("id asc").Find(&items).Error
	return items, err
}

func (r *FollowUpRepository) Get(ctx context.Context, id uint) (*models.FollowUp, error) {
	var f models.FollowUp
	if err := first(withCtx(ctx, r.db).Preload("TeamMember"), &f, "follow-up", id); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FollowUpRepository) ByIDs(ctx context.Context, ids []uint) ([]models.FollowUp, error) {
	var items []models.FollowUp
	if len(ids) == 0 {
		return items, nil
	}
	err := withCtx(ctx, r.db).Preload("TeamMember").Where("id IN ?", ids).Order("id asc").Find(&items).Error
	return items, err
}

func (r *FollowUpRepository) Create(ctx context.Context, f *models.FollowUp) error {
	db := withCtx(ctx, r.db)
	if err := r.validateRefs(db, f); err != nil {
		return err
	}
	if f.Status == "" {
		f.Status = models.FollowUpPending
	}
	if f.Priority == "" {
		f.Priority = models.PriorityMedium
	}
	f.DueDate = models.DateOf(f.DueDate)
	return create(db, f)
}

// Update overwrites follow-up id. Empty status or priority keeps the stored
// value, and an unchanged related link is not re-checked.
func (r *FollowUpRepository) Update(ctx context.Context, id uint, in *models.FollowUp) (*models.FollowUp, error) {
	db := withCtx(ctx, r.db)
	var f models.FollowUp
	if err := first(db, &f, "follow-up", id); err != nil {
		return nil, err
	}
	var err error
	if ref := in.Related(); !ref.IsZero() && ref == f.Related() {
		err = requireOptionalMember(db, in.TeamMemberID)
	} else {
		err = r.validateRefs(db, in)
	}
	if err != nil {
		return nil, err
	}
	f.Title = in.Title
	f.Description = in.Description
	f.DueDate = models.DateOf(in.DueDate)
	if in.Status != "" {
		f.Status = in.Status
	}
	if in.Priority != "" {
		f.Priority = in.Priority
	}
	f.SetRelated(in.Related())
	f.TeamMemberID = in.TeamMemberID
	if err := save(db, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Complete forces the status to Completed.
func (r *FollowUpRepository) Complete(ctx context.Context, id uint) (*models.FollowUp, error) {
	db := withCtx(ctx, r.db)
	var f models.FollowUp
	if err := first(db, &f, "follow-up", id); err != nil {
		return nil, err
	}
	f.Complete()
	if err := db.Model(&f).UpdateColumn("status", f.Status).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FollowUpRepository) Delete(ctx context.Context, id uint) error {
	db := withCtx(ctx, r.db)
	var f models.FollowUp
	if err := first(db, &f, "follow-up", id); err != nil {
		return err
	}
	return db.Delete(&f).Error
}

// Overdue returns open follow-ups due strictly before today's date.
func (r *FollowUpRepository) Overdue(ctx context.Context, today time.Time) ([]models.FollowUp, error) {
	var items []models.FollowUp
	err := withCtx(ctx, r.db).Preload("TeamMember").
		Where("status IN ?", models.OpenFollowUpStatuses).
		Where("due_date < ?", models.DateOf(today)).
		Order("due_date asc").Order("id asc").Find(&items).Error
	return items, err
}

// Upcoming returns the next limit open follow-ups by due date.
func (r *FollowUpRepository) Upcoming(ctx context.Context, limit int) ([]models.FollowUp, error) {
	var items []models.FollowUp
	err := withCtx(ctx, r.db).Preload("TeamMember").
		Where("status IN ?", models.OpenFollowUpStatuses).
		Order("due_date asc").Order("id asc").Limit(limit).Find(&items).Error
	return items, err
}

// validateRefs checks the assignee and the related record exist.
func (r *FollowUpRepository) validateRefs(db *gorm.DB, f *models.FollowUp) error {
	if err := requireOptionalMember(db, f.TeamMemberID); err != nil {
		return err
	}
	ref := f.Related()
	if ref.IsZero() {
		if f.RelatedType != models.RelatedNone {
			return models.NewValidationError("related id is required when related type is set")
		}
		f.SetRelated(models.RelatedRef{})
		return nil
	}

	var model interface{}
	switch ref.Type {
	case models.RelatedOpportunity:
		model = &models.Opportunity{}
	case models.RelatedSupportCase:
		model = &models.SupportCase{}
	case models.RelatedOneOnOne:
		model = &models.OneOnOne{}
	case models.RelatedNote:
		model = &models.Note{}
	default:
		return models.NewValidationErrorf("unknown related type %q", ref.Type)
	}

	var count int64
	if err := db.Model(model).Where("id = ?", ref.ID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return models.NewValidationErrorf("%s %d does not exist", ref.Type, ref.ID)
	}
	return nil
}
