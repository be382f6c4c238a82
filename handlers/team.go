package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type TeamHandler struct {
	*base
}

func pathID(r *http.Request) uint {
	id, _ := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return uint(id)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.store.Members.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "team", map[string]interface{}{
		"Members": members,
	})
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	member, err := parseMemberForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	if err := h.store.Members.Create(r.Context(), member); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	h.done(w, r, "/team", "Team member added successfully")
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	member, err := parseMemberForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	if _, err := h.store.Members.Update(r.Context(), pathID(r), member); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	h.done(w, r, "/team", "Team member updated successfully")
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	if err := h.store.Members.Delete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/team")
		return
	}
	h.done(w, r, "/team", "Team member deleted successfully")
}
