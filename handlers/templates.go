package handlers

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"seteam/models"
	"seteam/templates"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var funcMap = template.FuncMap{
	"deref": func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"optDate": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"currency": func(v float64) string {
		return printer.Sprintf("$%.0f", v)
	},
	"optInt": func(p *int) string {
		if p == nil {
			return ""
		}
		return fmt.Sprint(*p)
	},
	"level": func(s models.SkillSet, skill models.Skill) models.Proficiency {
		return s.Level(skill)
	},
	"levelClass": func(p models.Proficiency) string {
		return fmt.Sprintf("level-%d", p.Rank())
	},
	"overdue": func(f models.FollowUp, today time.Time) bool {
		return f.IsOverdue(today)
	},
	"tags":  models.SplitTags,
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"str": func(v interface{}) string {
		return fmt.Sprint(v)
	},
	"eqs": func(a, b interface{}) bool {
		return fmt.Sprint(a) == fmt.Sprint(b)
	},
	"hasProduct": func(list models.ProductList, p models.Product) bool {
		return list.Has(p)
	},
	"skillParam": func(s models.Skill) string {
		return "skill_" + string(s)
	},
	"stageLabel": func(s models.Stage) string {
		if s.IsClosed() {
			return "6 - Closed"
		}
		return string(s)
	},
}

// loadTemplates pairs every page with base.html.
func loadTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(templates.Pages))
	for _, page := range templates.Pages {
		t, err := template.New("").Funcs(funcMap).ParseFS(templates.FS, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		pages[page] = t
	}
	return pages, nil
}

// enums is exposed to every page for select boxes.
type enums struct {
	Regions           []models.Region
	Stages            []models.Stage
	CaseStatuses      []models.CaseStatus
	Priorities        []models.Priority
	FollowUpStatuses  []models.FollowUpStatus
	Moods             []models.Mood
	Skills            []models.Skill
	ProficiencyLevels []models.Proficiency
	Products          []models.Product
	POVStatuses       []models.POVStatus
	RelatedTypes      []models.RelatedType
}

var allEnums = enums{
	Regions:           models.Regions,
	Stages:            models.Stages,
	CaseStatuses:      models.CaseStatuses,
	Priorities:        models.Priorities,
	FollowUpStatuses:  models.FollowUpStatuses,
	Moods:             models.Moods,
	Skills:            models.Skills,
	ProficiencyLevels: models.ProficiencyLevels,
	Products:          models.Products,
	POVStatuses:       models.POVStatuses,
	RelatedTypes:      models.RelatedTypes,
}
