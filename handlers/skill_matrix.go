package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"seteam/models"
	"seteam/repository"
)

type SkillMatrixHandler struct {
	*base
}

// matrixFilter reads region and skill_<Skill> query parameters.
func matrixFilter(q url.Values) repository.MatrixFilter {
	f := repository.MatrixFilter{
		Region: models.Region(strings.TrimSpace(q.Get("region"))),
		Skills: map[models.Skill]models.Proficiency{},
	}
	for _, skill := range models.Skills {
		if level := strings.TrimSpace(q.Get("skill_" + string(skill))); level != "" {
			f.Skills[skill] = models.Proficiency(level)
		}
	}
	return f
}

func (h *SkillMatrixHandler) Matrix(w http.ResponseWriter, r *http.Request) {
	filter := matrixFilter(r.URL.Query())
	rows, err := h.store.Skills.Matrix(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "skill_matrix", map[string]interface{}{
		"Rows":   rows,
		"Filter": filter,
	})
}

// Update sets one rating. Without next it returns to the matrix with the
// filters that were active, sent as filter_region and filter_skill_<Skill>.
func (h *SkillMatrixHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/skill-matrix")
		return
	}
	back := matrixRedirect(r.PostForm)
	rating, err := parseRatingForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, back)
		return
	}
	if err := h.store.Skills.SetRating(r.Context(), rating.TeamMemberID, rating.Skill, rating.Proficiency); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.done(w, r, back, "Skill rating updated")
}

func matrixRedirect(form url.Values) string {
	q := url.Values{}
	if region := strings.TrimSpace(form.Get("filter_region")); region != "" {
		q.Set("region", region)
	}
	for _, skill := range models.Skills {
		if level := strings.TrimSpace(form.Get("filter_skill_" + string(skill))); level != "" {
			q.Set("skill_"+string(skill), level)
		}
	}
	if len(q) == 0 {
		return "/skill-matrix"
	}
	return "/skill-matrix?" + q.Encode()
}
