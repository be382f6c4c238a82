package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"seteam/config"
	"seteam/logger"
	"seteam/middleware"
	"seteam/models"
	"seteam/repository"
	"seteam/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

type testApp struct {
	t      *testing.T
	store  *repository.Store
	router http.Handler
}

func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{SecretKey: "test-secret", SessionExpiration: time.Hour}
	}
	clock := func() time.Time { return testNow }
	store := repository.NewWithClock(testutil.NewDB(t), clock)
	router, err := NewRouter(cfg, store, logger.Nop(), clock)
	require.NoError(t, err)
	return &testApp{t: t, store: store, router: router}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

func postRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(postRequest(path, form))
}

func (a *testApp) addMember(name string, region models.Region) *models.TeamMember {
	a.t.Helper()
	m := &models.TeamMember{Name: name, Email: strings.ToLower(name) + "@example.com", Region: region}
	require.NoError(a.t, a.store.Members.Create(context.Background(), m))
	return m
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestDashboardRenders(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)
	memberID := member.ID
	require.NoError(t, app.store.FollowUps.Create(context.Background(), &models.FollowUp{
		Title:        "Send pricing",
		DueDate:      testNow.AddDate(0, 0, -2),
		Status:       models.FollowUpPending,
		Priority:     models.PriorityHigh,
		TeamMemberID: &memberID,
	}))

	rec := app.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Overdue Follow-ups")
	assert.Contains(t, body, "Send pricing")
	assert.Contains(t, body, `class="overdue"`)
}

func TestEveryPageRenders(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)
	ctx := context.Background()
	require.NoError(t, app.store.Meetings.Create(ctx, &models.OneOnOne{TeamMemberID: member.ID, Date: testNow, Mood: models.MoodGood}))
	require.NoError(t, app.store.Opportunities.Create(ctx, &models.Opportunity{
		TeamMemberID: member.ID, Name: "Acme Deal", Account: "Acme", Stage: models.Stage2,
		Value: 1000, POVStatus: models.POVActive, Products: models.ProductList{models.ProductPRA},
	}))
	require.NoError(t, app.store.Cases.Create(ctx, &models.SupportCase{TeamMemberID: member.ID, Title: "Broken SSO"}))
	require.NoError(t, app.store.Notes.Create(ctx, &models.Note{Title: "Kickoff", Tags: "onboarding"}))

	for _, path := range []string{
		"/", "/team", "/one-on-ones", "/one-on-ones?member_id=" + idString(member.ID),
		"/opportunities", "/support-cases", "/follow-ups", "/notes", "/skill-matrix", "/reports",
	} {
		rec := app.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "</html>", path)
	}
}

func TestTeamCreateRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/team/add", url.Values{
		"name":   {"Dana"},
		"email":  {"dana@example.com"},
		"region": {"EMEA"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/team", rec.Header().Get("Location"))

	flash := cookieNamed(rec, middleware.FlashCookie)
	require.NotNil(t, flash)

	page := app.get("/team", flash)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "Team member added successfully")
	assert.Contains(t, page.Body.String(), "dana@example.com")

	// Shown once.
	again := app.get("/team")
	assert.NotContains(t, again.Body.String(), "Team member added successfully")
}

func TestTeamCreateValidationError(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/team/add", url.Values{
		"name":   {"Dana"},
		"region": {"EMEA"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is required")
	assert.Contains(t, rec.Body.String(), `url=/team`)

	members, err := app.store.Members.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestInvalidEnumIsRejected(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/team/add", url.Values{
		"name":   {"Dana"},
		"email":  {"dana@example.com"},
		"region": {"Antarctica"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMissingRecordIsNotFound(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/team/edit/999", url.Values{
		"name":   {"Dana"},
		"email":  {"dana@example.com"},
		"region": {"EMEA"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.post("/team/delete/abc", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNextMustBeLocal(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/one-on-ones?member_id=3", "/one-on-ones?member_id=3"},
		{"absolute url", "https://evil.example.com/", "/team"},
		{"protocol relative", "//evil.example.com/x", "/team"},
		{"relative path", "team", "/team"},
		{"empty", "", "/team"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, nil)
			rec := app.post("/team/add", url.Values{
				"name":   {"Dana"},
				"email":  {"dana@example.com"},
				"region": {"EMEA"},
				"next":   {tt.next},
			})
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestOpportunityStageChangeIsRecorded(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)

	rec := app.post("/opportunities/add", url.Values{
		"name":           {"Acme Deal"},
		"account":        {"Acme"},
		"stage":          {"1"},
		"value":          {"$150,000"},
		"team_member_id": {idString(member.ID)},
		"close_date":     {"2024-09-30"},
		"products":       {"PRA", "RS"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	opps, err := app.store.Opportunities.List(context.Background(), repository.OpportunityFilter{})
	require.NoError(t, err)
	require.Len(t, opps, 1)
	opp := opps[0]
	assert.Equal(t, 150000.0, opp.Value)
	assert.Equal(t, models.FlagNo, opp.RFP)
	assert.Equal(t, models.POVNone, opp.POVStatus)
	assert.True(t, opp.Products.Has(models.ProductRS))
	require.NotNil(t, opp.CloseDate)
	assert.Equal(t, "2024-09-30", opp.CloseDate.Format("2006-01-02"))

	rec = app.post("/opportunities/edit/"+idString(opp.ID), url.Values{
		"name":           {"Acme Deal"},
		"account":        {"Acme"},
		"stage":          {"3"},
		"value":          {"150000"},
		"team_member_id": {idString(member.ID)},
		"comment":        {"Demo booked"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	history, err := app.store.Opportunities.History(context.Background(), opp.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	var comments []string
	for _, u := range history {
		comments = append(comments, u.Comment)
	}
	assert.Contains(t, comments, "Demo booked")
}

func TestOpportunityBadNumberIsRejected(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)

	rec := app.post("/opportunities/add", url.Values{
		"name":           {"Acme Deal"},
		"account":        {"Acme"},
		"stage":          {"1"},
		"value":          {"lots"},
		"team_member_id": {idString(member.ID)},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompleteFollowUpReturnsToReferer(t *testing.T) {
	app := newTestApp(t, nil)
	item := &models.FollowUp{Title: "Call back", DueDate: testNow, Status: models.FollowUpPending, Priority: models.PriorityLow}
	require.NoError(t, app.store.FollowUps.Create(context.Background(), item))

	req := postRequest("/follow-ups/complete/"+idString(item.ID), url.Values{})
	req.Header.Set("Referer", "http://example.com/one-on-ones?member_id=7")
	rec := app.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/one-on-ones?member_id=7", rec.Header().Get("Location"))

	got, err := app.store.FollowUps.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, got.Status)

	// Foreign referers are ignored.
	req = postRequest("/follow-ups/complete/"+idString(item.ID), url.Values{})
	req.Header.Set("Referer", "http://evil.example.com/steal")
	rec = app.do(req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/follow-ups", rec.Header().Get("Location"))
}

func TestFollowUpRejectsDanglingReference(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/follow-ups/add", url.Values{
		"title":        {"Check case"},
		"due_date":     {"June 10, 2024"},
		"related_type": {"support_case"},
		"related_id":   {"42"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "support_case 42 does not exist")
}

func TestCaseEditWithoutStatusKeepsResolution(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	member := app.addMember("Alice", models.RegionAmericas)
	c := &models.SupportCase{TeamMemberID: member.ID, Title: "Broken SSO", Status: models.CaseResolved, Priority: models.PriorityHigh}
	require.NoError(t, app.store.Cases.Create(ctx, c))

	rec := app.post("/support-cases/edit/"+idString(c.ID), url.Values{
		"title":          {"Broken SSO (Okta)"},
		"team_member_id": {idString(member.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := app.store.Cases.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Broken SSO (Okta)", got.Title)
	assert.Equal(t, models.CaseResolved, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.NotNil(t, got.ResolvedAt)
}

func TestFollowUpEditWithoutStatusKeepsIt(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	item := &models.FollowUp{Title: "Call back", DueDate: testNow, Status: models.FollowUpCompleted, Priority: models.PriorityHigh}
	require.NoError(t, app.store.FollowUps.Create(ctx, item))

	rec := app.post("/follow-ups/edit/"+idString(item.ID), url.Values{
		"title":    {"Call back Bob"},
		"due_date": {"2024-06-03"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := app.store.FollowUps.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpCompleted, got.Status)
	assert.Equal(t, models.PriorityHigh, got.Priority)
}

func TestFollowUpEditAfterLinkedOpportunityDeleted(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	member := app.addMember("Alice", models.RegionAmericas)
	opp := &models.Opportunity{TeamMemberID: member.ID, Name: "Acme Deal", Account: "Acme", Stage: models.Stage2}
	require.NoError(t, app.store.Opportunities.Create(ctx, opp))

	rec := app.post("/follow-ups/add", url.Values{
		"title":        {"Send quote"},
		"due_date":     {"2024-06-10"},
		"related_type": {"opportunity"},
		"related_id":   {idString(opp.ID)},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	items, err := app.store.FollowUps.List(ctx, repository.FollowUpFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	item := items[0]

	rec = app.post("/opportunities/delete/"+idString(opp.ID), url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, err := app.store.FollowUps.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Related().IsZero())

	rec = app.post("/follow-ups/edit/"+idString(item.ID), url.Values{
		"title":    {"Send revised quote"},
		"due_date": {"2024-06-10"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	got, err = app.store.FollowUps.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Send revised quote", got.Title)
}

func TestOpportunityLinkIsFreeText(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)

	rec := app.post("/opportunities/add", url.Values{
		"name":            {"Acme Deal"},
		"account":         {"Acme"},
		"stage":           {"1"},
		"team_member_id":  {idString(member.ID)},
		"salesforce_link": {"acme.my.salesforce.com/006XYZ"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	opps, err := app.store.Opportunities.List(context.Background(), repository.OpportunityFilter{})
	require.NoError(t, err)
	require.Len(t, opps, 1)
	assert.Equal(t, "acme.my.salesforce.com/006XYZ", opps[0].SalesforceLink)
}

func TestSkillUpdateKeepsFilters(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Bob", models.RegionEMEA)

	rec := app.post("/skill-matrix/update", url.Values{
		"team_member_id":   {idString(member.ID)},
		"skill":            {"PRA"},
		"proficiency":      {"Expert"},
		"filter_region":    {"EMEA"},
		"filter_skill_PRA": {"Expert"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/skill-matrix?region=EMEA&skill_PRA=Expert", rec.Header().Get("Location"))

	skills, err := app.store.Skills.SkillSet(context.Background(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProficiencyExpert, skills.Level(models.SkillPRA))

	rec = app.post("/skill-matrix/update", url.Values{
		"team_member_id": {idString(member.ID)},
		"skill":          {"PRA"},
		"proficiency":    {"Guru"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSkillMatrixFilters(t *testing.T) {
	app := newTestApp(t, nil)
	app.addMember("Alice", models.RegionAmericas)
	bob := app.addMember("Bob", models.RegionEMEA)
	require.NoError(t, app.store.Skills.SetRating(context.Background(), bob.ID, models.SkillPRA, models.ProficiencyExpert))

	rec := app.get("/skill-matrix?region=EMEA")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bob")
	assert.NotContains(t, rec.Body.String(), "Alice")

	rec = app.get("/skill-matrix?skill_PRA=" + url.QueryEscape("Haven't Started"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Alice")
	assert.NotContains(t, rec.Body.String(), "Bob")
}

func TestNotesTagFilter(t *testing.T) {
	app := newTestApp(t, nil)
	ctx := context.Background()
	require.NoError(t, app.store.Notes.Create(ctx, &models.Note{Title: "Kickoff", Tags: "onboarding,q3"}))
	require.NoError(t, app.store.Notes.Create(ctx, &models.Note{Title: "Retro", Tags: "process"}))

	rec := app.get("/notes?tag=q3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kickoff")
	assert.NotContains(t, rec.Body.String(), "Retro")
}

func TestMemberOverviewUnknownMember(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get("/one-on-ones?member_id=999")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "url=/one-on-ones")
}

func TestReportDownload(t *testing.T) {
	app := newTestApp(t, nil)
	member := app.addMember("Alice", models.RegionAmericas)

	rec := app.post("/reports/generate", url.Values{
		"format":       {"csv"},
		"team_members": {idString(member.ID)},
		"start_date":   {"2024-01-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="se_team_report.csv"`, rec.Header().Get("Content-Disposition"))
	body := rec.Body.String()
	assert.Contains(t, body, "SE Team Manager Report")
	assert.Contains(t, body, "Date Range: 2024-01-01 to Now")
	assert.Contains(t, body, "Alice")

	rec = app.post("/reports/generate", url.Values{
		"team_members": {idString(member.ID)},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="se_team_report.pdf"`, rec.Header().Get("Content-Disposition"))
	head, err := io.ReadAll(io.LimitReader(rec.Body, 5))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(head))
}

func TestReportRejectsUnknownFormat(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.post("/reports/generate", url.Values{"format": {"xlsx"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.post("/reports/generate", url.Values{"format": {"csv"}, "notes": {"x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginGate(t *testing.T) {
	hash, err := middleware.HashPassword("letmein")
	require.NoError(t, err)
	app := newTestApp(t, &config.Config{
		SecretKey:         "test-secret",
		SessionExpiration: time.Hour,
		AuthPasswordHash:  hash,
	})

	rec := app.get("/team")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, app.get("/login").Code)

	rec = app.post("/login", url.Values{"password": {"wrong"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?error=Invalid+password", rec.Header().Get("Location"))

	rec = app.post("/login", url.Values{"password": {"letmein"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	session := cookieNamed(rec, middleware.SessionCookie)
	require.NotNil(t, session)

	assert.Equal(t, http.StatusOK, app.get("/team", session).Code)

	rec = app.get("/logout", session)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := cookieNamed(rec, middleware.SessionCookie)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestLoginPageRedirectsWhenAuthDisabled(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.get("/login")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
