package repository

import (
	"context"
	"time"

	"seteam/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepository struct {
	db *gorm.DB
}

type MatrixFilter struct {
	Region models.Region
	// Skills holds the required level per skill. A member matches only if
	// every listed skill is at exactly that level, unrated counting as the default.
	Skills map[models.Skill]models.Proficiency
}

// MatrixRow is one member with all their ratings.
type MatrixRow struct {
	Member models.TeamMember
	Skills models.SkillSet
}

// Matrix returns the members matching the filter, ordered by name.
func (r *SkillRepository) Matrix(ctx context.Context, f MatrixFilter) ([]MatrixRow, error) {
	db := withCtx(ctx, r.db)
	q := db.Order("name asc")
	if f.Region != "" {
		q = q.Where("region = ?", f.Region)
	}
	var members []models.TeamMember
	if err := q.Find(&members).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	sets, err := r.skillSets(db, ids)
	if err != nil {
		return nil, err
	}

	rows := make([]MatrixRow, 0, len(members))
	for _, m := range members {
		set := sets[m.ID]
		if !set.Matches(f.Skills) {
			continue
		}
		rows = append(rows, MatrixRow{Member: m, Skills: set})
	}
	return rows, nil
}

// ForMembers returns matrix rows for the given member ids, ordered by id.
func (r *SkillRepository) ForMembers(ctx context.Context, ids []uint) ([]MatrixRow, error) {
	rows := []MatrixRow{}
	if len(ids) == 0 {
		return rows, nil
	}
	db := withCtx(ctx, r.db)
	var members []models.TeamMember
	if err := db.Where("id IN ?", ids).Order("id asc").Find(&members).Error; err != nil {
		return nil, err
	}
	sets, err := r.skillSets(db, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		rows = append(rows, MatrixRow{Member: m, Skills: sets[m.ID]})
	}
	return rows, nil
}

// SkillSet returns one member's ratings.
func (r *SkillRepository) SkillSet(ctx context.Context, memberID uint) (models.SkillSet, error) {
	sets, err := r.skillSets(withCtx(ctx, r.db), []uint{memberID})
	if err != nil {
		return nil, err
	}
	if set, ok := sets[memberID]; ok {
		return set, nil
	}
	return models.SkillSet{}, nil
}

func (r *SkillRepository) skillSets(db *gorm.DB, memberIDs []uint) (map[uint]models.SkillSet, error) {
	sets := map[uint]models.SkillSet{}
	if len(memberIDs) == 0 {
		return sets, nil
	}
	var ratings []models.SkillRating
	if err := db.Where("team_member_id IN ?", memberIDs).Find(&ratings).Error; err != nil {
		return nil, err
	}
	for _, rt := range ratings {
		if sets[rt.TeamMemberID] == nil {
			sets[rt.TeamMemberID] = models.SkillSet{}
		}
		sets[rt.TeamMemberID][rt.Skill] = rt.Proficiency
	}
	return sets, nil
}

// SetRating inserts or updates the single rating for (member, skill).
func (r *SkillRepository) SetRating(ctx context.Context, memberID uint, skill models.Skill, level models.Proficiency) error {
	if !skill.Valid() {
		return models.NewValidationErrorf("unknown skill %q", skill)
	}
	if !level.Valid() {
		return models.NewValidationErrorf("unknown proficiency %q", level)
	}
	db := withCtx(ctx, r.db)
	if err := requireMember(db, memberID); err != nil {
		return err
	}

	now := time.Now().UTC()
	rating := models.SkillRating{
		TeamMemberID: memberID,
		Skill:        skill,
		Proficiency:  level,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_member_id"}, {Name: "skill"}},
		DoUpdates: clause.AssignmentColumns([]string{"proficiency", "updated_at"}),
	}).Create(&rating).Error
}
