package models

// Closed value sets used across the app. Each type reports membership
// through Valid, which the form validator calls for the "enum" rule.

type Region string

const (
	RegionEast     Region = "East"
	RegionCentral  Region = "Central"
	RegionWest     Region = "West"
	RegionGlobal   Region = "Global"
	RegionAmericas Region = "Americas"
	RegionEMEA     Region = "EMEA"
	RegionAPAC     Region = "APAC"
)

var Regions = []Region{RegionEast, RegionCentral, RegionWest, RegionGlobal, RegionAmericas, RegionEMEA, RegionAPAC}

func (r Region) Valid() bool {
	switch r {
	case RegionEast, RegionCentral, RegionWest, RegionGlobal, RegionAmericas, RegionEMEA, RegionAPAC:
		return true
	}
	return false
}

// Stage is the pipeline position "1".."6". Stage 6 is terminal (won or lost).
type Stage string

const (
	Stage1 Stage = "1"
	Stage2 Stage = "2"
	Stage3 Stage = "3"
	Stage4 Stage = "4"
	Stage5 Stage = "5"
	Stage6 Stage = "6"

	StageClosed = Stage6
)

var Stages = []Stage{Stage1, Stage2, Stage3, Stage4, Stage5, Stage6}

func (s Stage) Valid() bool {
	switch s {
	case Stage1, Stage2, Stage3, Stage4, Stage5, Stage6:
		return true
	}
	return false
}

func (s Stage) IsClosed() bool {
	return s == StageClosed
}

// LegacyStages maps the free-text stage names of older installations to the numeric scale.
var LegacyStages = map[string]Stage{
	"Prospecting":   Stage1,
	"Qualification": Stage2,
	"Demo":          Stage3,
	"POC":           Stage4,
	"Negotiation":   Stage5,
	"Closed Won":    Stage6,
	"Closed Lost":   Stage6,
}

type CaseStatus string

const (
	CaseOpen       CaseStatus = "Open"
	CaseInProgress CaseStatus = "In Progress"
	CasePending    CaseStatus = "Pending"
	CaseResolved   CaseStatus = "Resolved"
	CaseClosed     CaseStatus = "Closed"
)

var CaseStatuses = []CaseStatus{CaseOpen, CaseInProgress, CasePending, CaseResolved, CaseClosed}

// TerminalCaseStatuses are the statuses that count as resolved.
var TerminalCaseStatuses = []CaseStatus{CaseResolved, CaseClosed}

func (s CaseStatus) Valid() bool {
	switch s {
	case CaseOpen, CaseInProgress, CasePending, CaseResolved, CaseClosed:
		return true
	}
	return false
}

func (s CaseStatus) IsTerminal() bool {
	switch s {
	case CaseResolved, CaseClosed:
		return true
	case CaseOpen, CaseInProgress, CasePending:
		return false
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type FollowUpStatus string

const (
	FollowUpPending    FollowUpStatus = "Pending"
	FollowUpInProgress FollowUpStatus = "In Progress"
	FollowUpCompleted  FollowUpStatus = "Completed"
	FollowUpDeferred   FollowUpStatus = "Deferred"
)

var FollowUpStatuses = []FollowUpStatus{FollowUpPending, FollowUpInProgress, FollowUpCompleted, FollowUpDeferred}

// OpenFollowUpStatuses are the statuses that count towards "pending" and "overdue".
var OpenFollowUpStatuses = []FollowUpStatus{FollowUpPending, FollowUpInProgress}

func (s FollowUpStatus) Valid() bool {
	switch s {
	case FollowUpPending, FollowUpInProgress, FollowUpCompleted, FollowUpDeferred:
		return true
	}
	return false
}

func (s FollowUpStatus) IsOpen() bool {
	return s == FollowUpPending || s == FollowUpInProgress
}

type Mood string

const (
	MoodExcellent      Mood = "Excellent"
	MoodGood           Mood = "Good"
	MoodNeutral        Mood = "Neutral"
	MoodConcerned      Mood = "Concerned"
	MoodNeedsAttention Mood = "Needs Attention"
)

var Moods = []Mood{MoodExcellent, MoodGood, MoodNeutral, MoodConcerned, MoodNeedsAttention}

// Valid accepts the empty mood, meetings may be logged without one.
func (m Mood) Valid() bool {
	switch m {
	case "", MoodExcellent, MoodGood, MoodNeutral, MoodConcerned, MoodNeedsAttention:
		return true
	}
	return false
}

type Skill string

const (
	SkillPasswordSafe  Skill = "Password Safe"
	SkillEPMWinMac     Skill = "EPM Win-Mac"
	SkillEPML          Skill = "EPM-L"
	SkillRemoteSupport Skill = "Remote Support"
	SkillPRA           Skill = "PRA"
	SkillADBridge      Skill = "AD Bridge"
	SkillInsights      Skill = "Insights"
	SkillEntitle       Skill = "Entitle"
)

// Skills is the catalog in display order. Report and matrix columns follow it.
var Skills = []Skill{
	SkillPasswordSafe, SkillEPMWinMac, SkillEPML, SkillRemoteSupport,
	SkillPRA, SkillADBridge, SkillInsights, SkillEntitle,
}

func (s Skill) Valid() bool {
	switch s {
	case SkillPasswordSafe, SkillEPMWinMac, SkillEPML, SkillRemoteSupport,
		SkillPRA, SkillADBridge, SkillInsights, SkillEntitle:
		return true
	}
	return false
}

type Proficiency string

const (
	ProficiencyNotStarted Proficiency = "Haven't Started"
	ProficiencyTraining   Proficiency = "Training"
	ProficiencyDemoReady  Proficiency = "Demo Ready"
	ProficiencyPOVReady   Proficiency = "POV Ready"
	ProficiencyExpert     Proficiency = "Expert"

	DefaultProficiency = ProficiencyNotStarted
)

// ProficiencyLevels is ordered from lowest to highest.
var ProficiencyLevels = []Proficiency{
	ProficiencyNotStarted, ProficiencyTraining, ProficiencyDemoReady, ProficiencyPOVReady, ProficiencyExpert,
}

func (p Proficiency) Valid() bool {
	return p.Rank() >= 0
}

// Rank is the position on the scale, -1 for unknown values.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyNotStarted:
		return 0
	case ProficiencyTraining:
		return 1
	case ProficiencyDemoReady:
		return 2
	case ProficiencyPOVReady:
		return 3
	case ProficiencyExpert:
		return 4
	}
	return -1
}

type Product string

const (
	ProductEPM      Product = "EPM"
	ProductEPML     Product = "EPM-L"
	ProductPWS      Product = "PWS"
	ProductRS       Product = "RS"
	ProductPRA      Product = "PRA"
	ProductADB      Product = "ADB"
	ProductInsights Product = "Insights"
	ProductEntitle  Product = "Entitle"
)

var Products = []Product{ProductEPM, ProductEPML, ProductPWS, ProductRS, ProductPRA, ProductADB, ProductInsights, ProductEntitle}

func (p Product) Valid() bool {
	switch p {
	case ProductEPM, ProductEPML, ProductPWS, ProductRS, ProductPRA, ProductADB, ProductInsights, ProductEntitle:
		return true
	}
	return false
}

type POVStatus string

const (
	POVNone      POVStatus = "None"
	POVActive    POVStatus = "Active"
	POVCompleted POVStatus = "Completed"
	POVTechWin   POVStatus = "Tech Win"
)

var POVStatuses = []POVStatus{POVNone, POVActive, POVCompleted, POVTechWin}

func (s POVStatus) Valid() bool {
	switch s {
	case POVNone, POVActive, POVCompleted, POVTechWin:
		return true
	}
	return false
}

// Flag is the "Y"/"N" marker used for RFP and demo.
type Flag string

const (
	FlagYes Flag = "Y"
	FlagNo  Flag = "N"
)

func (f Flag) Valid() bool {
	return f == FlagYes || f == FlagNo
}

// RelatedType names the entity a follow-up points at.
type RelatedType string

const (
	RelatedNone        RelatedType = ""
	RelatedOpportunity RelatedType = "opportunity"
	RelatedSupportCase RelatedType = "support_case"
	RelatedOneOnOne    RelatedType = "one_on_one"
	RelatedNote        RelatedType = "note"
)

var RelatedTypes = []RelatedType{RelatedOpportunity, RelatedSupportCase, RelatedOneOnOne, RelatedNote}

func (t RelatedType) Valid() bool {
	switch t {
	case RelatedNone, RelatedOpportunity, RelatedSupportCase, RelatedOneOnOne, RelatedNote:
		return true
	}
	return false
}
