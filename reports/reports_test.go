package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"seteam/models"
	"seteam/repository"
	"seteam/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store   *repository.Store
	builder *Builder
	alice   *models.TeamMember
	bob     *models.TeamMember
	opp     *models.Opportunity
	pov     *models.Opportunity
	kase    *models.SupportCase
	task    *models.FollowUp
	note    *models.Note
	meeting *models.OneOnOne
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return generatedAt }
	store := repository.NewWithClock(testutil.NewDB(t), clock)
	f := &fixture{store: store, builder: NewBuilder(store, clock)}

	f.alice = &models.TeamMember{Name: "Alice", Email: "alice@example.com", Region: models.RegionEast, AlignedRep: "Rick"}
	f.bob = &models.TeamMember{Name: "Bob", Email: "bob@example.com", Region: models.RegionEMEA, Role: "Senior SE"}
	require.NoError(t, store.Members.Create(ctx, f.alice))
	require.NoError(t, store.Members.Create(ctx, f.bob))

	closeDate := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	f.opp = &models.Opportunity{TeamMemberID: f.alice.ID, Name: "Acme Deal", Account: "Acme", Stage: models.Stage3, Value: 150000, CloseDate: &closeDate}
	f.pov = &models.Opportunity{TeamMemberID: f.bob.ID, Name: "Globex POV", Account: "Globex", Stage: models.Stage4, Value: 1234.5, POVStatus: models.POVActive}
	require.NoError(t, store.Opportunities.Create(ctx, f.opp))
	require.NoError(t, store.Opportunities.Create(ctx, f.pov))

	f.kase = &models.SupportCase{TeamMemberID: f.bob.ID, Title: "SSO failing", Customer: "Globex", Description: "SAML assertion rejected", Status: models.CaseResolved}
	require.NoError(t, store.Cases.Create(ctx, f.kase))

	f.task = &models.FollowUp{Title: "Send quote", DueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}
	f.task.SetRelated(models.RelatedRef{Type: models.RelatedOpportunity, ID: f.opp.ID})
	require.NoError(t, store.FollowUps.Create(ctx, f.task))

	f.note = &models.Note{Title: "Offsite", Content: strings.Repeat("x", 600), Tags: "team,events", TeamMemberID: &f.alice.ID}
	require.NoError(t, store.Notes.Create(ctx, f.note))

	f.meeting = &models.OneOnOne{TeamMemberID: f.alice.ID, Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), Mood: models.MoodGood, Notes: "Pipeline review"}
	require.NoError(t, store.Meetings.Create(ctx, f.meeting))

	require.NoError(t, store.Skills.SetRating(ctx, f.alice.ID, models.SkillPRA, models.ProficiencyExpert))
	return f
}

func readCSV(t *testing.T, r *Report) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, CSVWriter{}.Write(&buf, r))
	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records
}

// sectionLabels returns the single-field upper-case markers in order.
func sectionLabels(records [][]string) []string {
	var labels []string
	for _, rec := range records[1:] {
		if len(rec) == 1 && rec[0] != "" && rec[0] == strings.ToUpper(rec[0]) && !strings.HasPrefix(rec[0], "GENERATED") {
			labels = append(labels, rec[0])
		}
	}
	return labels
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	assert.Equal(t, "se_team_report.csv", f.Filename())
	assert.Equal(t, "se_team_report.pdf", FormatPDF.Filename())

	_, err = ParseFormat("xlsx")
	assert.True(t, models.IsValidation(err))
}

func TestEmptySelectionHasNoSections(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{})
	require.NoError(t, err)
	assert.Empty(t, r.Sections)

	records := readCSV(t, r)
	require.Len(t, records, 2)
	assert.Equal(t, []string{Title}, records[0])
	assert.Equal(t, []string{"Generated: 2024-06-01 09:30"}, records[1])
}

func TestDateRangeCaption(t *testing.T) {
	r := &Report{StartDate: "2024-01-01"}
	assert.Equal(t, "Date Range: 2024-01-01 to Now", r.DateRange())

	r = &Report{EndDate: "March 1"}
	assert.Equal(t, "Date Range: Beginning to March 1", r.DateRange())

	assert.Empty(t, (&Report{}).DateRange())
}

func TestDateRangeDoesNotFilterRows(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{
		StartDate:     "2030-01-01",
		EndDate:       "2030-12-31",
		Opportunities: []uint{f.opp.ID},
	})
	require.NoError(t, err)
	require.Len(t, r.Sections, 1)
	assert.Len(t, r.Sections[0].Rows, 1)

	records := readCSV(t, r)
	assert.Equal(t, []string{"Date Range: 2030-01-01 to 2030-12-31"}, records[2])
}

func TestSingleCategoryProducesOneSection(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{SupportCases: []uint{f.kase.ID}})
	require.NoError(t, err)
	require.Len(t, r.Sections, 1)

	records := readCSV(t, r)
	assert.Equal(t, []string{"SUPPORT CASES"}, sectionLabels(records))
	assert.Equal(t, []string{"Title", "Customer", "Status", "Priority", "SE", "Description", "Created", "Resolved"}, records[3])
	assert.Equal(t, []string{"SSO failing", "Globex", "Resolved", "Medium", "Bob", "SAML assertion rejected"}, records[4][:6])
	assert.Equal(t, "2024-06-01", records[4][7], "resolved at the injected clock")
}

func TestAllSectionsInOrder(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{
		TeamMembers:   []uint{f.alice.ID, f.bob.ID},
		OneOnOnes:     []uint{f.meeting.ID},
		Opportunities: []uint{f.opp.ID},
		LivePOVs:      []uint{f.pov.ID},
		SupportCases:  []uint{f.kase.ID},
		FollowUps:     []uint{f.task.ID},
		Notes:         []uint{f.note.ID},
		SkillMatrix:   []uint{f.alice.ID},
	})
	require.NoError(t, err)

	records := readCSV(t, r)
	assert.Equal(t, []string{
		"TEAM MEMBERS", "1-1 MEETINGS", "OPPORTUNITIES", "LIVE POVS",
		"SUPPORT CASES", "FOLLOW-UPS", "NOTES", "SKILL MATRIX",
	}, sectionLabels(records))

	labels := map[string]bool{}
	for _, l := range sectionLabels(records) {
		labels[l] = true
	}
	byLabel := map[string][][]string{}
	var current string
	for _, rec := range records[2:] {
		if len(rec) == 1 && labels[rec[0]] {
			current = rec[0]
			continue
		}
		if current != "" {
			byLabel[current] = append(byLabel[current], rec)
		}
	}

	team := byLabel["TEAM MEMBERS"]
	assert.Equal(t, []string{"Name", "Email", "Region", "Rep 1", "Rep 2", "Role", "Created"}, team[0])
	assert.Equal(t, []string{"Alice", "alice@example.com", "East", "Rick", "", "SE"}, team[1][:6])
	assert.Equal(t, []string{"Bob", "bob@example.com", "EMEA", "", "", "Senior SE"}, team[2][:6])

	opps := byLabel["OPPORTUNITIES"]
	assert.Equal(t, []string{"Name", "Account", "Stage", "Value", "SE", "Close Date", "Created", "Updated"}, opps[0])
	assert.Equal(t, []string{"Acme Deal", "Acme", "3", "150000", "Alice", "2024-09-30"}, opps[1][:6])

	povs := byLabel["LIVE POVS"]
	assert.Equal(t, []string{"Globex POV", "Globex", "4", "1234.5", "Bob", ""}, povs[1][:6])

	tasks := byLabel["FOLLOW-UPS"]
	assert.Equal(t, []string{"Title", "Description", "Due Date", "Status", "Priority", "Team Member", "Related Type", "Related ID"}, tasks[0])
	assert.Equal(t, "opportunity", tasks[1][6])
	assert.NotEmpty(t, tasks[1][7])
	assert.Equal(t, "", tasks[1][5])

	notes := byLabel["NOTES"]
	assert.Equal(t, []string{"Title", "Content", "Tags", "Team Member", "Created"}, notes[0])
	assert.Len(t, notes[1][1], 600, "csv keeps long text intact")

	matrix := byLabel["SKILL MATRIX"]
	require.Len(t, matrix[0], 2+len(models.Skills))
	assert.Equal(t, "SE", matrix[0][0])
	assert.Equal(t, string(models.SkillPasswordSafe), matrix[0][2])
	assert.Equal(t, string(models.SkillEntitle), matrix[0][9])
	assert.Equal(t, "Alice", matrix[1][0])
	assert.Equal(t, string(models.DefaultProficiency), matrix[1][2])
	assert.Equal(t, string(models.ProficiencyExpert), matrix[1][6])
}

func TestPDFRendersSelectedSections(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{
		StartDate:     "2024-01-01",
		Opportunities: []uint{f.opp.ID},
		LivePOVs:      []uint{f.pov.ID},
		Notes:         []uint{f.note.ID},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PDFWriter{NoCompression: true}.Write(&buf, r))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Date Range: 2024-01-01 to Now")
	assert.Contains(t, out, "Opportunities")
	assert.Contains(t, out, "Live POVs")
	assert.Contains(t, out, "$150,000")
	assert.Contains(t, out, "Tags: team,events")
	assert.NotContains(t, out, "Skill Matrix")
	assert.NotContains(t, out, "Support Cases")
	assert.NotContains(t, out, "SAML")
}

func TestPDFHasCaptionOnlyForEmptySelection(t *testing.T) {
	f := newFixture(t)

	r, err := f.builder.Build(context.Background(), Selection{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, PDFWriter{NoCompression: true}.Write(&buf, r))
	assert.Contains(t, buf.String(), "Generated: 2024-06-01 09:30")
	assert.NotContains(t, buf.String(), "Team Members")
}

func TestProjectionHelpers(t *testing.T) {
	assert.Equal(t, "$150,000", formatCurrency(150000))
	assert.Equal(t, "$0", formatCurrency(0))
	assert.Equal(t, "$1,235", formatCurrency(1234.6))

	long := strings.Repeat("é", 600)
	assert.Equal(t, 500, len([]rune(truncate(long, blockTextLimit))))
	assert.Equal(t, "short", truncate("short", blockTextLimit))
	assert.Equal(t, long, truncate(long, 0))
}

func TestWriterFor(t *testing.T) {
	w, err := WriterFor(FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", w.ContentType())

	w, err = WriterFor(FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", w.ContentType())

	_, err = WriterFor("doc")
	assert.Error(t, err)
}
