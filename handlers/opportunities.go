package handlers

import (
	"net/http"

	"seteam/models"
	"seteam/repository"
)

type OpportunityHandler struct {
	*base
}

func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := repository.OpportunityFilter{
		Stage:        models.Stage(q.Get("stage")),
		TeamMemberID: queryID(q, "member_id"),
		POVStatus:    models.POVStatus(q.Get("pov_status")),
	}

	opps, err := h.store.Opportunities.List(ctx, filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "opportunities", map[string]interface{}{
		"Opportunities": opps,
		"Members":       members,
		"Filter":        filter,
	})
}

func (h *OpportunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	opp, _, err := parseOpportunityForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	if err := h.store.Opportunities.Create(r.Context(), opp); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	h.done(w, r, "/opportunities", "Opportunity added successfully")
}

// Update saves the edit. A stage change is recorded in the history with
// the submitted comment.
func (h *OpportunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	opp, comment, err := parseOpportunityForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	if _, err := h.store.Opportunities.Update(r.Context(), pathID(r), opp, comment); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	h.done(w, r, "/opportunities", "Opportunity updated successfully")
}

func (h *OpportunityHandler) Comment(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	if _, err := h.store.Opportunities.AddComment(r.Context(), pathID(r), r.PostFormValue("comment")); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	h.done(w, r, "/opportunities", "Comment added successfully")
}

func (h *OpportunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	if err := h.store.Opportunities.Delete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/opportunities")
		return
	}
	h.done(w, r, "/opportunities", "Opportunity deleted successfully")
}
