package handlers

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"seteam/models"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

type enumValue interface {
	Valid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})
	// enum accepts any value whose type reports membership through Valid.
	v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enumValue)
		return ok && e.Valid()
	})
	return v
}

// validateForm runs struct validation and turns the first failure into a
// models.ValidationError with a readable message.
func validateForm(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return models.NewValidationError(err.Error())
	}
	fe := verrs[0]
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return models.NewValidationErrorf("%s is required", field)
	case "email":
		return models.NewValidationErrorf("%s must be a valid email address", field)
	case "enum":
		return models.NewValidationErrorf("%s has an invalid value %q", field, fmt.Sprint(fe.Value()))
	case "max":
		return models.NewValidationErrorf("%s must be at most %s characters", field, fe.Param())
	case "min", "gte", "lte":
		return models.NewValidationErrorf("%s is out of range", field)
	case "url":
		return models.NewValidationErrorf("%s must be a valid URL", field)
	}
	return models.NewValidationErrorf("%s is invalid", field)
}

// formParser reads typed values from a submitted form and keeps the first
// conversion error.
type formParser struct {
	values url.Values
	err    error
}

func newFormParser(values url.Values) *formParser {
	return &formParser{values: values}
}

func (p *formParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *formParser) String(key string) string {
	return strings.TrimSpace(p.values.Get(key))
}

// Text keeps surrounding whitespace, for multi-line fields.
func (p *formParser) Text(key string) string {
	return p.values.Get(key)
}

func (p *formParser) List(key string) []string {
	var out []string
	for _, v := range p.values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Date parses a required date in any common human format.
func (p *formParser) Date(key string) time.Time {
	s := p.String(key)
	if s == "" {
		p.fail(models.NewValidationErrorf("%s is required", strings.ReplaceAll(key, "_", " ")))
		return time.Time{}
	}
	d, err := parseDate(s)
	if err != nil {
		p.fail(err)
	}
	return d
}

func (p *formParser) OptionalDate(key string) *time.Time {
	s := p.String(key)
	if s == "" {
		return nil
	}
	d, err := parseDate(s)
	if err != nil {
		p.fail(err)
		return nil
	}
	return &d
}

// Float is zero when empty and an error when malformed.
func (p *formParser) Float(key string) float64 {
	s := strings.ReplaceAll(p.String(key), ",", "")
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(models.NewValidationErrorf("%s must be a number, got %q", key, p.String(key)))
		return 0
	}
	return f
}

func (p *formParser) OptionalInt(key string) *int {
	s := p.String(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.fail(models.NewValidationErrorf("%s must be a whole number, got %q", key, s))
		return nil
	}
	return &n
}

// ID parses a required record id.
func (p *formParser) ID(key string) uint {
	id := p.OptionalID(key)
	if id == nil {
		p.fail(models.NewValidationErrorf("%s is required", strings.ReplaceAll(key, "_", " ")))
		return 0
	}
	return *id
}

func (p *formParser) OptionalID(key string) *uint {
	s := p.String(key)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		p.fail(models.NewValidationErrorf("%s is not a valid id: %q", key, s))
		return nil
	}
	id := uint(n)
	return &id
}

func parseDate(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, models.NewValidationErrorf("could not understand date %q", s)
	}
	return models.DateOf(t), nil
}

// queryID reads an optional positive id from the query string. Anything
// else means "no filter".
func queryID(q url.Values, key string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(q.Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func parseIDList(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return nil, models.NewValidationErrorf("invalid id %q", v)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}

type memberForm struct {
	Name        string        `form:"name" validate:"required,max=100"`
	Email       string        `form:"email" validate:"required,email,max=100"`
	Region      models.Region `form:"region" validate:"required,enum"`
	AlignedRep  string        `form:"aligned_rep" validate:"max=100"`
	AlignedRep2 string        `form:"aligned_rep_2" validate:"max=100"`
	Role        string        `form:"role" validate:"max=50"`
}

func parseMemberForm(values url.Values) (*models.TeamMember, error) {
	p := newFormParser(values)
	f := memberForm{
		Name:        p.String("name"),
		Email:       p.String("email"),
		Region:      models.Region(p.String("region")),
		AlignedRep:  p.String("aligned_rep"),
		AlignedRep2: p.String("aligned_rep_2"),
		Role:        p.String("role"),
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return &models.TeamMember{
		Name:        f.Name,
		Email:       f.Email,
		Region:      f.Region,
		AlignedRep:  f.AlignedRep,
		AlignedRep2: f.AlignedRep2,
		Role:        f.Role,
	}, nil
}

type meetingForm struct {
	TeamMemberID uint        `form:"team_member_id" validate:"required"`
	Date         time.Time   `form:"date"`
	Notes        string      `form:"notes"`
	ActionItems  string      `form:"action_items"`
	Mood         models.Mood `form:"mood" validate:"enum"`
}

func parseMeetingForm(values url.Values) (*models.OneOnOne, error) {
	p := newFormParser(values)
	f := meetingForm{
		TeamMemberID: p.ID("team_member_id"),
		Date:         p.Date("date"),
		Notes:        p.Text("notes"),
		ActionItems:  p.Text("action_items"),
		Mood:         models.Mood(p.String("mood")),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return &models.OneOnOne{
		TeamMemberID: f.TeamMemberID,
		Date:         f.Date,
		Notes:        f.Notes,
		ActionItems:  f.ActionItems,
		Mood:         f.Mood,
	}, nil
}

type opportunityForm struct {
	Name              string           `form:"name" validate:"required,max=200"`
	Account           string           `form:"account" validate:"required,max=200"`
	Stage             models.Stage     `form:"stage" validate:"required,enum"`
	Value             float64          `form:"value" validate:"gte=0"`
	TeamMemberID      uint             `form:"team_member_id" validate:"required"`
	CloseDate         *time.Time       `form:"close_date"`
	SalesforceLink    string           `form:"salesforce_link" validate:"max=500"`
	Confidence        *int             `form:"confidence" validate:"omitempty,gte=0,lte=100"`
	SalesRep          string           `form:"sales_rep" validate:"max=100"`
	Products          []models.Product `form:"products" validate:"dive,enum"`
	RFP               models.Flag      `form:"rfp" validate:"enum"`
	Demo              models.Flag      `form:"demo" validate:"enum"`
	POVStatus         models.POVStatus `form:"pov_status" validate:"enum"`
	LatestUpdateDate  *time.Time       `form:"latest_update_date"`
	LatestUpdateNotes string           `form:"latest_update_notes"`
}

// parseOpportunityForm returns the opportunity and the optional stage change comment.
func parseOpportunityForm(values url.Values) (*models.Opportunity, string, error) {
	p := newFormParser(values)
	f := opportunityForm{
		Name:              p.String("name"),
		Account:           p.String("account"),
		Stage:             models.Stage(p.String("stage")),
		Value:             p.Float("value"),
		TeamMemberID:      p.ID("team_member_id"),
		CloseDate:         p.OptionalDate("close_date"),
		SalesforceLink:    p.String("salesforce_link"),
		Confidence:        p.OptionalInt("confidence"),
		SalesRep:          p.String("sales_rep"),
		RFP:               models.Flag(p.String("rfp")),
		Demo:              models.Flag(p.String("demo")),
		POVStatus:         models.POVStatus(p.String("pov_status")),
		LatestUpdateDate:  p.OptionalDate("latest_update_date"),
		LatestUpdateNotes: p.Text("latest_update_notes"),
	}
	for _, prod := range p.List("products") {
		f.Products = append(f.Products, models.Product(prod))
	}
	if f.RFP == "" {
		f.RFP = models.FlagNo
	}
	if f.Demo == "" {
		f.Demo = models.FlagNo
	}
	if f.POVStatus == "" {
		f.POVStatus = models.POVNone
	}
	if p.err != nil {
		return nil, "", p.err
	}
	if err := validateForm(f); err != nil {
		return nil, "", err
	}
	return &models.Opportunity{
		Name:              f.Name,
		Account:           f.Account,
		Stage:             f.Stage,
		Value:             f.Value,
		TeamMemberID:      f.TeamMemberID,
		CloseDate:         f.CloseDate,
		SalesforceLink:    f.SalesforceLink,
		Confidence:        f.Confidence,
		SalesRep:          f.SalesRep,
		Products:          models.ProductList(f.Products),
		RFP:               f.RFP,
		Demo:              f.Demo,
		POVStatus:         f.POVStatus,
		LatestUpdateDate:  f.LatestUpdateDate,
		LatestUpdateNotes: f.LatestUpdateNotes,
	}, p.Text("comment"), nil
}

// Status and priority may be left empty: create applies the defaults,
// update keeps the stored values.
type caseForm struct {
	Title        string            `form:"title" validate:"required,max=200"`
	Description  string            `form:"description"`
	Status       models.CaseStatus `form:"status" validate:"omitempty,enum"`
	Priority     models.Priority   `form:"priority" validate:"omitempty,enum"`
	TeamMemberID uint              `form:"team_member_id" validate:"required"`
	Customer     string            `form:"customer" validate:"max=200"`
}

func parseCaseForm(values url.Values) (*models.SupportCase, error) {
	p := newFormParser(values)
	f := caseForm{
		Title:        p.String("title"),
		Description:  p.Text("description"),
		Status:       models.CaseStatus(p.String("status")),
		Priority:     models.Priority(p.String("priority")),
		TeamMemberID: p.ID("team_member_id"),
		Customer:     p.String("customer"),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return &models.SupportCase{
		Title:        f.Title,
		Description:  f.Description,
		Status:       f.Status,
		Priority:     f.Priority,
		TeamMemberID: f.TeamMemberID,
		Customer:     f.Customer,
	}, nil
}

type followUpForm struct {
	Title        string                `form:"title" validate:"required,max=200"`
	Description  string                `form:"description"`
	DueDate      time.Time             `form:"due_date"`
	Status       models.FollowUpStatus `form:"status" validate:"omitempty,enum"`
	Priority     models.Priority       `form:"priority" validate:"omitempty,enum"`
	RelatedType  models.RelatedType    `form:"related_type" validate:"enum"`
	RelatedID    *uint                 `form:"related_id"`
	TeamMemberID *uint                 `form:"team_member_id"`
}

func parseFollowUpForm(values url.Values) (*models.FollowUp, error) {
	p := newFormParser(values)
	f := followUpForm{
		Title:        p.String("title"),
		Description:  p.Text("description"),
		DueDate:      p.Date("due_date"),
		Status:       models.FollowUpStatus(p.String("status")),
		Priority:     models.Priority(p.String("priority")),
		RelatedType:  models.RelatedType(p.String("related_type")),
		RelatedID:    p.OptionalID("related_id"),
		TeamMemberID: p.OptionalID("team_member_id"),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	item := &models.FollowUp{
		Title:        f.Title,
		Description:  f.Description,
		DueDate:      f.DueDate,
		Status:       f.Status,
		Priority:     f.Priority,
		TeamMemberID: f.TeamMemberID,
		RelatedType:  f.RelatedType,
		RelatedID:    f.RelatedID,
	}
	return item, nil
}

type noteForm struct {
	Title        string `form:"title" validate:"required,max=200"`
	Content      string `form:"content"`
	Tags         string `form:"tags" validate:"max=500"`
	TeamMemberID *uint  `form:"team_member_id"`
}

func parseNoteForm(values url.Values) (*models.Note, error) {
	p := newFormParser(values)
	f := noteForm{
		Title:        p.String("title"),
		Content:      p.Text("content"),
		Tags:         strings.Join(models.SplitTags(p.String("tags")), ","),
		TeamMemberID: p.OptionalID("team_member_id"),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return &models.Note{
		Title:        f.Title,
		Content:      f.Content,
		Tags:         f.Tags,
		TeamMemberID: f.TeamMemberID,
	}, nil
}

type ratingForm struct {
	TeamMemberID uint               `form:"team_member_id" validate:"required"`
	Skill        models.Skill       `form:"skill" validate:"required,enum"`
	Proficiency  models.Proficiency `form:"proficiency" validate:"required,enum"`
}

func parseRatingForm(values url.Values) (*ratingForm, error) {
	p := newFormParser(values)
	f := &ratingForm{
		TeamMemberID: p.ID("team_member_id"),
		Skill:        models.Skill(p.String("skill")),
		Proficiency:  models.Proficiency(p.String("proficiency")),
	}
	if p.err != nil {
		return nil, p.err
	}
	if err := validateForm(f); err != nil {
		return nil, err
	}
	return f, nil
}
