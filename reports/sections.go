package reports

import (
	"strconv"
	"time"

	"seteam/models"
	"seteam/repository"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout = "2006-01-02"
	// blockTextLimit caps long free text in PDF blocks.
	blockTextLimit = 500
)

var (
	white        = RGB{245, 245, 245}
	black        = RGB{0, 0, 0}
	brandHeader  = RGB{0xf1, 0x58, 0x22}
	greenHeader  = RGB{0x2e, 0x7d, 0x32}
	orangeHeader = RGB{0xed, 0x6c, 0x02}
	amberHeader  = RGB{0xff, 0xc1, 0x07}
	peachHeader  = RGB{0xf1, 0x82, 0x2e}
)

var currency = message.NewPrinter(language.English)

// formatCurrency renders whole dollars with thousands separators, e.g. $150,000.
func formatCurrency(v float64) string {
	return currency.Sprintf("$%.0f", v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func text(s string) Cell {
	return Cell{Raw: s}
}

func memberName(m *models.TeamMember) string {
	if m == nil {
		return ""
	}
	return m.Name
}

func teamMembersSection(members []models.TeamMember) *Section {
	s := &Section{
		Title:      "Team Members",
		HeaderFill: brandHeader,
		HeaderText: white,
		Columns: []Column{
			{Header: "Name", Width: 90, MaxLen: 30},
			{Header: "Email", Width: 130},
			{Header: "Region", Width: 60},
			{Header: "Rep 1", Width: 85},
			{Header: "Rep 2", Width: 85},
			{Header: "Role", Width: 60},
			{Header: "Created", CSVOnly: true},
		},
	}
	for _, m := range members {
		s.Rows = append(s.Rows, []Cell{
			text(m.Name),
			text(m.Email),
			text(string(m.Region)),
			text(m.AlignedRep),
			text(m.AlignedRep2),
			text(m.Role),
			text(formatDate(m.CreatedAt)),
		})
	}
	return s
}

func meetingsSection(meetings []models.OneOnOne) *Section {
	s := &Section{
		Title:  "1-1 Meetings",
		Layout: LayoutBlocks,
		Columns: []Column{
			{Header: "Team Member", Block: BlockHeading},
			{Header: "Date", Block: BlockHeadingSuffix},
			{Header: "Mood", Block: BlockLine},
			{Header: "Notes", Block: BlockLine, MaxLen: blockTextLimit},
			{Header: "Action Items", Block: BlockLine, MaxLen: blockTextLimit},
		},
	}
	for _, m := range meetings {
		s.Rows = append(s.Rows, []Cell{
			text(memberName(m.TeamMember)),
			text(formatDate(m.Date)),
			text(string(m.Mood)),
			text(m.Notes),
			text(m.ActionItems),
		})
	}
	return s
}

func opportunitiesSection(title string, header RGB, opps []models.Opportunity) *Section {
	s := &Section{
		Title:      title,
		HeaderFill: header,
		HeaderText: white,
		Columns: []Column{
			{Header: "Name", Width: 120, MaxLen: 30},
			{Header: "Account", Width: 100, MaxLen: 20},
			{Header: "Stage", Width: 45},
			{Header: "Value", Width: 75},
			{Header: "SE", Width: 95},
			{Header: "Close Date", Width: 75},
			{Header: "Created", CSVOnly: true},
			{Header: "Updated", CSVOnly: true},
		},
	}
	for _, o := range opps {
		s.Rows = append(s.Rows, []Cell{
			text(o.Name),
			text(o.Account),
			text(string(o.Stage)),
			{Raw: strconv.FormatFloat(o.Value, 'f', -1, 64), Display: formatCurrency(o.Value)},
			text(memberName(o.TeamMember)),
			text(formatOptionalDate(o.CloseDate)),
			text(formatDate(o.CreatedAt)),
			text(formatDate(o.UpdatedAt)),
		})
	}
	return s
}

func supportCasesSection(cases []models.SupportCase) *Section {
	s := &Section{
		Title:      "Support Cases",
		HeaderFill: amberHeader,
		HeaderText: black,
		Columns: []Column{
			{Header: "Title", Width: 140, MaxLen: 30},
			{Header: "Customer", Width: 110, MaxLen: 20},
			{Header: "Status", Width: 75},
			{Header: "Priority", Width: 60},
			{Header: "SE", Width: 100},
			{Header: "Description", CSVOnly: true},
			{Header: "Created", CSVOnly: true},
			{Header: "Resolved", CSVOnly: true},
		},
	}
	for _, c := range cases {
		s.Rows = append(s.Rows, []Cell{
			text(c.Title),
			text(c.Customer),
			text(string(c.Status)),
			text(string(c.Priority)),
			text(memberName(c.TeamMember)),
			text(c.Description),
			text(formatDate(c.CreatedAt)),
			text(formatOptionalDate(c.ResolvedAt)),
		})
	}
	return s
}

func followUpsSection(items []models.FollowUp) *Section {
	s := &Section{
		Title:      "Follow-ups",
		HeaderFill: peachHeader,
		HeaderText: black,
		Columns: []Column{
			{Header: "Title", Width: 150, MaxLen: 30},
			{Header: "Description", CSVOnly: true},
			{Header: "Due Date", Width: 75},
			{Header: "Status", Width: 75},
			{Header: "Priority", Width: 60},
			{Header: "Team Member", Width: 110},
			{Header: "Related Type", CSVOnly: true},
			{Header: "Related ID", CSVOnly: true},
		},
	}
	for _, f := range items {
		ref := f.Related()
		relatedID := ""
		if !ref.IsZero() {
			relatedID = strconv.FormatUint(uint64(ref.ID), 10)
		}
		s.Rows = append(s.Rows, []Cell{
			text(f.Title),
			text(f.Description),
			text(formatDate(f.DueDate)),
			text(string(f.Status)),
			text(string(f.Priority)),
			text(memberName(f.TeamMember)),
			text(string(ref.Type)),
			text(relatedID),
		})
	}
	return s
}

func notesSection(notes []models.Note) *Section {
	s := &Section{
		Title:  "Notes",
		Layout: LayoutBlocks,
		Columns: []Column{
			{Header: "Title", Block: BlockHeading},
			{Header: "Content", Block: BlockBody, MaxLen: blockTextLimit},
			{Header: "Tags", Block: BlockLine},
			{Header: "Team Member", Block: BlockLine},
			{Header: "Created", Block: BlockHeadingSuffix},
		},
	}
	for _, n := range notes {
		s.Rows = append(s.Rows, []Cell{
			text(n.Title),
			text(n.Content),
			text(n.Tags),
			text(memberName(n.TeamMember)),
			text(formatDate(n.CreatedAt)),
		})
	}
	return s
}

func skillMatrixSection(rows []repository.MatrixRow) *Section {
	s := &Section{
		Title:      "Skill Matrix",
		HeaderFill: peachHeader,
		HeaderText: black,
		FontSize:   7,
		Columns: []Column{
			{Header: "SE", Width: 72, MaxLen: 20},
			{Header: "Region", Width: 52},
		},
	}
	for _, skill := range models.Skills {
		s.Columns = append(s.Columns, Column{Header: string(skill), Width: 52})
	}
	for _, row := range rows {
		cells := []Cell{text(row.Member.Name), text(string(row.Member.Region))}
		for _, skill := range models.Skills {
			cells = append(cells, text(string(row.Skills.Level(skill))))
		}
		s.Rows = append(s.Rows, cells)
	}
	return s
}
