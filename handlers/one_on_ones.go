package handlers

import (
	"net/http"
	"strconv"

	"seteam/repository"
)

type OneOnOneHandler struct {
	*base
}

func meetingsPath(memberID uint) string {
	if memberID == 0 {
		return "/one-on-ones"
	}
	return withQuery("/one-on-ones", "member_id", strconv.FormatUint(uint64(memberID), 10))
}

// List shows all meetings, or with member_id the member overview.
func (h *OneOnOneHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberID := queryID(r.URL.Query(), "member_id")

	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	data := map[string]interface{}{
		"Members":  members,
		"MemberID": memberID,
	}

	if memberID != 0 {
		overview, err := h.store.MemberOverview(ctx, memberID)
		if err != nil {
			h.fail(w, r, err, "/one-on-ones")
			return
		}
		data["Overview"] = overview
		data["Meetings"] = overview.Meetings
	} else {
		meetings, err := h.store.Meetings.List(ctx, repository.MeetingFilter{})
		if err != nil {
			h.fail(w, r, err, "/")
			return
		}
		data["Meetings"] = meetings
	}
	h.render(w, r, http.StatusOK, "one_on_ones", data)
}

func (h *OneOnOneHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	meeting, err := parseMeetingForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	if err := h.store.Meetings.Create(r.Context(), meeting); err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	h.done(w, r, meetingsPath(meeting.TeamMemberID), "1-1 meeting logged successfully")
}

func (h *OneOnOneHandler) Update(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	meeting, err := parseMeetingForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	updated, err := h.store.Meetings.Update(r.Context(), pathID(r), meeting)
	if err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	h.done(w, r, meetingsPath(updated.TeamMemberID), "1-1 meeting updated successfully")
}

func (h *OneOnOneHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	deleted, err := h.store.Meetings.Delete(r.Context(), pathID(r))
	if err != nil {
		h.fail(w, r, err, "/one-on-ones")
		return
	}
	h.done(w, r, meetingsPath(deleted.TeamMemberID), "1-1 meeting deleted successfully")
}
