package repository

import (
	"context"
	"strings"

	"seteam/models"

	"gorm.io/gorm"
)

type OpportunityRepository struct {
	db *gorm.DB
}

type OpportunityFilter struct {
	Stage        models.Stage
	TeamMemberID uint
	POVStatus    models.POVStatus
	OpenOnly     bool
}

func (f OpportunityFilter) apply(q *gorm.DB) *gorm.DB {
	if f.Stage != "" {
		q = q.Where("stage = ?", f.Stage)
	}
	if f.TeamMemberID != 0 {
		q = q.Where("team_member_id = ?", f.TeamMemberID)
	}
	if f.POVStatus != "" {
		q = q.Where("pov_status = ?", f.POVStatus)
	}
	if f.OpenOnly {
		q = q.Where("stage <> ?", models.StageClosed)
	}
	return q
}

// List returns matching opportunities, most recently updated first, with
// member and stage history loaded.
func (r *OpportunityRepository) List(ctx context.Context, f OpportunityFilter) ([]models.Opportunity, error) {
	q := withCtx(ctx, r.db).Preload("TeamMember").Preload("Updates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at desc").Order("id desc")
	})
	var opps []models.Opportunity
	err := f.apply(q).Order("updated_at desc").Order("id desc").Find(&opps).Error
	return opps, err
}

func (r *OpportunityRepository) Get(ctx context.Context, id uint) (*models.Opportunity, error) {
	var opp models.Opportunity
	q := withCtx(ctx, r.db).Preload("TeamMember").Preload("Updates", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc").Order("id asc")
	})
	if err := first(q, &opp, "opportunity", id); err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *OpportunityRepository) ByIDs(ctx context.Context, ids []uint) ([]models.Opportunity, error) {
	var opps []models.Opportunity
	if len(ids) == 0 {
		return opps, nil
	}
	err := withCtx(ctx, r.db).Preload("TeamMember").Where("id IN ?", ids).Order("id asc").Find(&opps).Error
	return opps, err
}

// Create inserts the opportunity together with its "Opportunity created" history row.
func (r *OpportunityRepository) Create(ctx context.Context, opp *models.Opportunity) error {
	normalizeOpportunity(opp)
	return withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := requireMember(tx, opp.TeamMemberID); err != nil {
			return err
		}
		if err := create(tx, opp); err != nil {
			return err
		}
		update := opp.CreationUpdate()
		return tx.Create(&update).Error
	})
}

// Update overwrites the editable fields of opportunity id with those of in.
// A stage change appends one history row carrying comment (or a synthesized
// one) in the same transaction.
func (r *OpportunityRepository) Update(ctx context.Context, id uint, in *models.Opportunity, comment string) (*models.Opportunity, error) {
	normalizeOpportunity(in)
	var opp models.Opportunity
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := first(tx, &opp, "opportunity", id); err != nil {
			return err
		}
		if err := requireMember(tx, in.TeamMemberID); err != nil {
			return err
		}

		update := opp.ChangeStage(in.Stage, comment)
		opp.Name = in.Name
		opp.Account = in.Account
		opp.Value = in.Value
		opp.TeamMemberID = in.TeamMemberID
		opp.CloseDate = in.CloseDate
		opp.SalesforceLink = in.SalesforceLink
		opp.Confidence = in.Confidence
		opp.SalesRep = in.SalesRep
		opp.Products = in.Products
		opp.RFP = in.RFP
		opp.Demo = in.Demo
		opp.POVStatus = in.POVStatus
		opp.LatestUpdateDate = in.LatestUpdateDate
		opp.LatestUpdateNotes = in.LatestUpdateNotes

		if err := save(tx, &opp); err != nil {
			return err
		}
		if update != nil {
			return tx.Create(update).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

// AddComment appends a history row without a stage change.
func (r *OpportunityRepository) AddComment(ctx context.Context, id uint, comment string) (*models.OpportunityUpdate, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, models.NewValidationError("comment is required")
	}
	update := &models.OpportunityUpdate{OpportunityID: id, Comment: comment}
	err := withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var opp models.Opportunity
		if err := first(tx, &opp, "opportunity", id); err != nil {
			return err
		}
		return tx.Create(update).Error
	})
	if err != nil {
		return nil, err
	}
	return update, nil
}

// History returns the stage history oldest first.
func (r *OpportunityRepository) History(ctx context.Context, id uint) ([]models.OpportunityUpdate, error) {
	var updates []models.OpportunityUpdate
	err := withCtx(ctx, r.db).Where("opportunity_id = ?", id).
		Order("created_at asc").Order("id asc").Find(&updates).Error
	return updates, err
}

// Delete removes the opportunity and its history.
func (r *OpportunityRepository) Delete(ctx context.Context, id uint) error {
	return withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var opp models.Opportunity
		if err := first(tx, &opp, "opportunity", id); err != nil {
			return err
		}
		if err := tx.Where("opportunity_id = ?", id).Delete(&models.OpportunityUpdate{}).Error; err != nil {
			return err
		}
		if err := unlinkFollowUps(tx, models.RelatedOpportunity, id); err != nil {
			return err
		}
		return tx.Delete(&opp).Error
	})
}

func normalizeOpportunity(opp *models.Opportunity) {
	if opp.Stage == "" {
		opp.Stage = models.Stage1
	}
	if opp.RFP == "" {
		opp.RFP = models.FlagNo
	}
	if opp.Demo == "" {
		opp.Demo = models.FlagNo
	}
	if opp.POVStatus == "" {
		opp.POVStatus = models.POVNone
	}
	if opp.CloseDate != nil {
		d := models.DateOf(*opp.CloseDate)
		opp.CloseDate = &d
	}
	if opp.LatestUpdateDate != nil {
		d := models.DateOf(*opp.LatestUpdateDate)
		opp.LatestUpdateDate = &d
	}
}
