// Package reports turns a selection of records into a PDF or CSV export.
//
// Every section is projected once into columns and cells; the CSV and PDF
// writers only decide which columns to show and how to lay them out.
package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"seteam/models"
	"seteam/repository"
)

const Title = "SE Team Manager Report"

type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat accepts "pdf" and "csv", case-insensitively. Empty means pdf.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", models.NewValidationErrorf("unknown report format %q", s)
}

// Filename is the download name offered to the browser.
func (f Format) Filename() string {
	return "se_team_report." + string(f)
}

// Selection lists, per category, the ids to include. An empty list drops the
// section. StartDate and EndDate are shown in the caption only.
type Selection struct {
	Format        Format
	StartDate     string
	EndDate       string
	TeamMembers   []uint
	OneOnOnes     []uint
	Opportunities []uint
	LivePOVs      []uint
	SupportCases  []uint
	FollowUps     []uint
	Notes         []uint
	SkillMatrix   []uint
}

type Layout int

const (
	LayoutTable Layout = iota
	// LayoutBlocks renders one paragraph group per row in the PDF.
	LayoutBlocks
)

// BlockRole places a column inside a PDF block.
type BlockRole int

const (
	BlockSkip BlockRole = iota
	BlockHeading
	BlockHeadingSuffix
	BlockLine
	BlockBody
)

type Column struct {
	Header  string
	CSVOnly bool
	// Width is the PDF table column width in points.
	Width float64
	// MaxLen truncates the PDF rendering to this many characters.
	MaxLen int
	Block  BlockRole
}

// Cell holds the exported value and an optional PDF rendering of it.
type Cell struct {
	Raw     string
	Display string
}

func (c Cell) PDFText() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Raw
}

type RGB struct{ R, G, B int }

type Section struct {
	Title      string
	Layout     Layout
	HeaderFill RGB
	HeaderText RGB
	// FontSize of body rows in the PDF, 0 for the default.
	FontSize float64
	Columns  []Column
	Rows     [][]Cell
}

// CSVLabel is the upper-case section marker written before the header row.
func (s *Section) CSVLabel() string {
	return strings.ToUpper(s.Title)
}

type Report struct {
	Title       string
	GeneratedAt time.Time
	StartDate   string
	EndDate     string
	Sections    []Section
}

// DateRange returns the caption for the requested range, or "" when neither
// end was given.
func (r *Report) DateRange() string {
	if r.StartDate == "" && r.EndDate == "" {
		return ""
	}
	start, end := r.StartDate, r.EndDate
	if start == "" {
		start = "Beginning"
	}
	if end == "" {
		end = "Now"
	}
	return fmt.Sprintf("Date Range: %s to %s", start, end)
}

func (r *Report) Generated() string {
	return "Generated: " + r.GeneratedAt.Format("2006-01-02 15:04")
}

// Writer serializes a report in one format.
type Writer interface {
	ContentType() string
	Write(w io.Writer, r *Report) error
}

func WriterFor(f Format) (Writer, error) {
	switch f {
	case FormatPDF:
		return &PDFWriter{}, nil
	case FormatCSV:
		return &CSVWriter{}, nil
	}
	return nil, models.NewValidationErrorf("unknown report format %q", f)
}

type Builder struct {
	store *repository.Store
	now   repository.Clock
}

func NewBuilder(store *repository.Store, now repository.Clock) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{store: store, now: now}
}

// Build loads the selected rows and projects them into sections in the fixed
// report order.
func (b *Builder) Build(ctx context.Context, sel Selection) (*Report, error) {
	r := &Report{
		Title:       Title,
		GeneratedAt: b.now(),
		StartDate:   strings.TrimSpace(sel.StartDate),
		EndDate:     strings.TrimSpace(sel.EndDate),
	}

	add := func(s *Section) {
		if s != nil && len(s.Rows) > 0 {
			r.Sections = append(r.Sections, *s)
		}
	}

	if len(sel.TeamMembers) > 0 {
		members, err := b.store.Members.ByIDs(ctx, sel.TeamMembers)
		if err != nil {
			return nil, err
		}
		add(teamMembersSection(members))
	}
	if len(sel.OneOnOnes) > 0 {
		meetings, err := b.store.Meetings.ByIDs(ctx, sel.OneOnOnes)
		if err != nil {
			return nil, err
		}
		add(meetingsSection(meetings))
	}
	if len(sel.Opportunities) > 0 {
		opps, err := b.store.Opportunities.ByIDs(ctx, sel.Opportunities)
		if err != nil {
			return nil, err
		}
		add(opportunitiesSection("Opportunities", greenHeader, opps))
	}
	if len(sel.LivePOVs) > 0 {
		povs, err := b.store.Opportunities.ByIDs(ctx, sel.LivePOVs)
		if err != nil {
			return nil, err
		}
		add(opportunitiesSection("Live POVs", orangeHeader, povs))
	}
	if len(sel.SupportCases) > 0 {
		cases, err := b.store.Cases.ByIDs(ctx, sel.SupportCases)
		if err != nil {
			return nil, err
		}
		add(supportCasesSection(cases))
	}
	if len(sel.FollowUps) > 0 {
		items, err := b.store.FollowUps.ByIDs(ctx, sel.FollowUps)
		if err != nil {
			return nil, err
		}
		add(followUpsSection(items))
	}
	if len(sel.Notes) > 0 {
		notes, err := b.store.Notes.ByIDs(ctx, sel.Notes)
		if err != nil {
			return nil, err
		}
		add(notesSection(notes))
	}
	if len(sel.SkillMatrix) > 0 {
		rows, err := b.store.Skills.ForMembers(ctx, sel.SkillMatrix)
		if err != nil {
			return nil, err
		}
		add(skillMatrixSection(rows))
	}
	return r, nil
}
