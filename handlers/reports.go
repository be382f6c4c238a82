package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"seteam/models"
	"seteam/reports"
	"seteam/repository"
)

type ReportHandler struct {
	*base
	builder *reports.Builder
}

// Page lists every record so the user can pick what goes into the export.
func (h *ReportHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	members, err := h.store.Members.List(ctx)
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	meetings, err := h.store.Meetings.List(ctx, repository.MeetingFilter{})
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	opps, err := h.store.Opportunities.List(ctx, repository.OpportunityFilter{})
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	var live []models.Opportunity
	for _, opp := range opps {
		if opp.IsLivePOV() {
			live = append(live, opp)
		}
	}
	cases, err := h.store.Cases.List(ctx, repository.CaseFilter{})
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	followUps, err := h.store.FollowUps.List(ctx, repository.FollowUpFilter{})
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}
	notes, err := h.store.Notes.List(ctx, repository.NoteFilter{})
	if err != nil {
		h.fail(w, r, err, "/")
		return
	}

	h.render(w, r, http.StatusOK, "reports", map[string]interface{}{
		"Members":       members,
		"Meetings":      meetings,
		"Opportunities": opps,
		"LivePOVs":      live,
		"Cases":         cases,
		"FollowUps":     followUps,
		"Notes":         notes,
	})
}

// Generate builds the whole document in memory and sends it as a download.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.fail(w, r, err, "/reports")
		return
	}
	sel, err := parseSelection(r)
	if err != nil {
		h.fail(w, r, err, "/reports")
		return
	}
	writer, err := reports.WriterFor(sel.Format)
	if err != nil {
		h.fail(w, r, err, "/reports")
		return
	}
	report, err := h.builder.Build(r.Context(), sel)
	if err != nil {
		h.fail(w, r, err, "/reports")
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, report); err != nil {
		h.fail(w, r, err, "/reports")
		return
	}

	h.logger(r).WithFields(map[string]interface{}{
		"format":   string(sel.Format),
		"sections": len(report.Sections),
		"bytes":    buf.Len(),
	}).Info("report generated")

	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sel.Format.Filename()))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func parseSelection(r *http.Request) (reports.Selection, error) {
	format, err := reports.ParseFormat(r.PostFormValue("format"))
	if err != nil {
		return reports.Selection{}, err
	}
	sel := reports.Selection{
		Format:    format,
		StartDate: r.PostFormValue("start_date"),
		EndDate:   r.PostFormValue("end_date"),
	}
	lists := []struct {
		key  string
		dest *[]uint
	}{
		{"team_members", &sel.TeamMembers},
		{"one_on_ones", &sel.OneOnOnes},
		{"opportunities", &sel.Opportunities},
		{"live_povs", &sel.LivePOVs},
		{"support_cases", &sel.SupportCases},
		{"follow_ups", &sel.FollowUps},
		{"notes", &sel.Notes},
		{"skill_matrix", &sel.SkillMatrix},
	}
	for _, l := range lists {
		ids, err := parseIDList(r.PostForm[l.key])
		if err != nil {
			return reports.Selection{}, err
		}
		*l.dest = ids
	}
	return sel, nil
}
