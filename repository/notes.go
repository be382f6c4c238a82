package repository

import (
	"context"
	"sort"
	"strings"

	"seteam/models"

	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

type NoteFilter struct {
	// Search matches title or content, case-insensitively.
	Search       string
	Tag          string
	TeamMemberID uint
}

func likePattern(s string) string {
	s = strings.ToLower(s)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// List returns matching notes newest first.
func (r *NoteRepository) List(ctx context.Context, f NoteFilter) ([]models.Note, error) {
	q := withCtx(ctx, r.db).Preload("TeamMember")
	if s := strings.TrimSpace(f.Search); s != "" {
		p := likePattern(s)
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, p, p)
	}
	if t := strings.TrimSpace(f.Tag); t != "" {
		q = q.Where(`LOWER(tags) LIKE ? ESCAPE '\'`, likePattern(t))
	}
	if f.TeamMemberID != 0 {
		q = q.Where("team_member_id = ?", f.TeamMemberID)
	}
	var notes []models.Note
	err := q.Order("created_at desc").Order("id desc").Find(&notes).Error
	return notes, err
}

// AllTags returns every distinct tag used by any note, sorted.
func (r *NoteRepository) AllTags(ctx context.Context) ([]string, error) {
	var raw []string
	err := withCtx(ctx, r.db).Model(&models.Note{}).
		Where("tags IS NOT NULL AND tags <> ''").Pluck("tags", &raw).Error
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	for _, tags := range raw {
		for _, t := range models.SplitTags(tags) {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

func (r *NoteRepository) Get(ctx context.Context, id uint) (*models.Note, error) {
	var n models.Note
	if err := first(withCtx(ctx, r.db).Preload("TeamMember"), &n, "note", id); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) ByIDs(ctx context.Context, ids []uint) ([]models.Note, error) {
	var notes []models.Note
	if len(ids) == 0 {
		return notes, nil
	}
	err := withCtx(ctx, r.db).Preload("TeamMember").Where("id IN ?", ids).Order("id asc").Find(&notes).Error
	return notes, err
}

func (r *NoteRepository) Create(ctx context.Context, n *models.Note) error {
	db := withCtx(ctx, r.db)
	if err := requireOptionalMember(db, n.TeamMemberID); err != nil {
		return err
	}
	return create(db, n)
}

func (r *NoteRepository) Update(ctx context.Context, id uint, in *models.Note) (*models.Note, error) {
	db := withCtx(ctx, r.db)
	var n models.Note
	if err := first(db, &n, "note", id); err != nil {
		return nil, err
	}
	if err := requireOptionalMember(db, in.TeamMemberID); err != nil {
		return nil, err
	}
	n.Title = in.Title
	n.Content = in.Content
	n.Tags = in.Tags
	n.TeamMemberID = in.TeamMemberID
	if err := save(db, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uint) error {
	return withCtx(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var n models.Note
		if err := first(tx, &n, "note", id); err != nil {
			return err
		}
		if err := unlinkFollowUps(tx, models.RelatedNote, id); err != nil {
			return err
		}
		return tx.Delete(&n).Error
	})
}
