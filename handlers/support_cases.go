package handlers

import (
	"net/http"

	"seteam/models"
	"seteam/repository"
)

type SupportCaseHandler struct {
	*base
}

func (h *SupportCaseHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := repository.CaseFilter{
		Status:       models.CaseStatus(q.Get("status")),
		Priority:     models.Priority(q.Get("priority")),
		TeamMemberID: queryID(q, "member_id"),
	}

	cases, err := h.store.Cases.List(ctx, filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "support_cases", map[string]interface{}{
		"Cases":   cases,
		"Members": members,
		"Filter":  filter,
	})
}

func (h *SupportCaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	c, err := parseCaseForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	if err := h.store.Cases.Create(r.Context(), c); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	h.done(w, r, "/support-cases", "Support case created successfully")
}

func (h *SupportCaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	c, err := parseCaseForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	if _, err := h.store.Cases.Update(r.Context(), pathID(r), c); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	h.done(w, r, "/support-cases", "Support case updated successfully")
}

func (h *SupportCaseHandler) Comment(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	if _, err := h.store.Cases.AddComment(r.Context(), pathID(r), r.PostFormValue("comment")); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	h.done(w, r, "/support-cases", "Comment added successfully")
}

func (h *SupportCaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	if err := h.store.Cases.Delete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/support-cases")
		return
	}
	h.done(w, r, "/support-cases", "Support case deleted successfully")
}
