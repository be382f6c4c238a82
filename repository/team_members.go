package repository

import (
	"context"

	"seteam/models"

	"gorm.io/gorm"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

// List returns every member ordered by name.
func (r *TeamMemberRepository) List(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := withCtx(ctx, r.db).Order("name asc").Find(&members).Error
	return members, err
}

func (r *TeamMemberRepository) Get(ctx context.Context, id uint) (*models.TeamMember, error) {
	var m models.TeamMember
	if err := first(withCtx(ctx, r.db), &m, "team member", id); err != nil {
		return nil, err
	}
	return &m, nil
}

// ByIDs returns the members with the given ids, ordered by id.
func (r *TeamMemberRepository) ByIDs(ctx context.Context, ids []uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if len(ids) == 0 {
		return members, nil
	}
	err := withCtx(ctx, r.db).Where("id IN ?", ids).Order("id asc").Find(&members).Error
	return members, err
}

func (r *TeamMemberRepository) Create(ctx context.Context, m *models.TeamMember) error {
	if m.Role == "" {
		m.Role = models.DefaultRole
	}
	return create(withCtx(ctx, r.db), m)
}

// Update overwrites the editable fields of member id with those of m.
func (r *TeamMemberRepository) Update(ctx context.Context, id uint, m *models.TeamMember) (*models.TeamMember, error) {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = m.Name
	existing.Email = m.Email
	existing.Region = m.Region
	existing.AlignedRep = m.AlignedRep
	existing.AlignedRep2 = m.AlignedRep2
	existing.Role = m.Role
	if existing.Role == "" {
		existing.Role = models.DefaultRole
	}
	if err := save(withCtx(ctx, r.db), existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes the member and everything that belongs to it in one transaction.
func (r *TeamMemberRepository) Delete(ctx context.Context, id uint) error {
	return withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var m models.TeamMember
		if err := first(tx, &m, "team member", id); err != nil {
			return err
		}

		oppIDs := tx.Model(&models.Opportunity{}).Select("id").Where("team_member_id = ?", id)
		if err := tx.Where("opportunity_id IN (?)", oppIDs).Delete(&models.OpportunityUpdate{}).Error; err != nil {
			return err
		}
		caseIDs := tx.Model(&models.SupportCase{}).Select("id").Where("team_member_id = ?", id)
		if err := tx.Where("case_id IN (?)", caseIDs).Delete(&models.SupportCaseComment{}).Error; err != nil {
			return err
		}

		// Follow-ups owned by other members may point at records about to go.
		linked := map[models.RelatedType]interface{}{
			models.RelatedOpportunity: oppIDs,
			models.RelatedSupportCase: caseIDs,
			models.RelatedOneOnOne:    tx.Model(&models.OneOnOne{}).Select("id").Where("team_member_id = ?", id),
			models.RelatedNote:        tx.Model(&models.Note{}).Select("id").Where("team_member_id = ?", id),
		}
		for t, ids := range linked {
			if err := unlinkFollowUps(tx, t, ids); err != nil {
				return err
			}
		}

		owned := []interface{}{
			&models.OneOnOne{},
			&models.Opportunity{},
			&models.SupportCase{},
			&models.FollowUp{},
			&models.Note{},
			&models.SkillRating{},
		}
		for _, model := range owned {
			if err := tx.Where("team_member_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&m).Error
	})
}
