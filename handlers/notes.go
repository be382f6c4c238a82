package handlers

import (
	"net/http"
	"strings"

	"seteam/repository"
)

type NoteHandler struct {
	*base
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	filter := repository.NoteFilter{
		Search:       strings.TrimSpace(q.Get("search")),
		Tag:          strings.TrimSpace(q.Get("tag")),
		TeamMemberID: queryID(q, "member_id"),
	}

	notes, err := h.store.Notes.List(ctx, filter)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	tags, err := h.store.Notes.AllTags(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	h.render(w, r, http.StatusOK, "notes", map[string]interface{}{
		"Notes":   notes,
		"Tags":    tags,
		"Members": members,
		"Filter":  filter,
	})
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	note, err := parseNoteForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	if err := h.store.Notes.Create(r.Context(), note); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	h.done(w, r, "/notes", "Note created successfully")
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	note, err := parseNoteForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	if _, err := h.store.Notes.Update(r.Context(), pathID(r), note); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	h.done(w, r, "/notes", "Note updated successfully")
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	if err := h.store.Notes.Delete(r.Context(), pathID(r)); err != nil {
		h.fail(w, r, err, "/notes")
		return
	}
	h.done(w, r, "/notes", "Note deleted successfully")
}
