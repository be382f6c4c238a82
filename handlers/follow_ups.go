package handlers

import (
	"net/http"

	"seteam/models"
	"seteam/repository"
)

type FollowUpHandler struct {
	*base
}

func (h *FollowUpHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := repository.FollowUpFilter{
		Status:       models.FollowUpStatus(q.Get("status")),
		Priority:     models.Priority(q.Get("priority")),
		TeamMemberID: queryID(q, "member_id"),
	}

	items, err := h.store.FollowUps.List(ctx, filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "follow_ups", map[string]interface{}{
		"FollowUps": items,
		"Members":   members,
		"Filter":    filter,
	})
}

func (h *FollowUpHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	item, err := parseFollowUpForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	if err := h.store.FollowUps.Create(r.Context(), item); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	h.done(w, r, "/follow-ups", "Follow-up created successfully")
}

func (h *FollowUpHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	item, err := parseFollowUpForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	if _, err := h.store.FollowUps.Update(r.Context(), pathID(r), item); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	h.done(w, r, "/follow-ups", "Follow-up updated successfully")
}

// Complete returns to next, else the referring page, else the list.
func (h *FollowUpHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	if _, err := h.store.FollowUps.Complete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	fallback := sameHostReferer(r)
	if fallback == "" {
		fallback = "/follow-ups"
	}
	h.done(w, r, fallback, "Follow-up marked as completed")
}

func (h *FollowUpHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	if err := h.store.FollowUps.Delete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/follow-ups")
		return
	}
	h.done(w, r, "/follow-ups", "Follow-up deleted successfully")
}
