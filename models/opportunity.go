package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Opportunity struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `gorm:"index" json:"updated_at"`
	TeamMemberID      uint                `gorm:"not null;index" json:"team_member_id"`
	TeamMember        *TeamMember         `gorm:"foreignKey:TeamMemberID" json:"team_member,omitempty"`
	Name              string              `gorm:"not null;size:200" json:"name"`
	Account           string              `gorm:"not null;size:200" json:"account"`
	Stage             Stage               `gorm:"not null;size:50;default:1" json:"stage"`
	Value             float64             `gorm:"default:0" json:"value"`
	CloseDate         *time.Time          `gorm:"type:date" json:"close_date"`
	SalesforceLink    string              `gorm:"size:500" json:"salesforce_link"`
	Confidence        *int                `json:"confidence"`
	SalesRep          string              `gorm:"size:100" json:"sales_rep"`
	Products          ProductList         `gorm:"size:500" json:"products"`
	RFP               Flag                `gorm:"column:rfp;size:1" json:"rfp"`
	Demo              Flag                `gorm:"size:1" json:"demo"`
	POVStatus         POVStatus           `gorm:"column:pov_status;size:20" json:"pov_status"`
	LatestUpdateDate  *time.Time          `gorm:"type:date" json:"latest_update_date"`
	LatestUpdateNotes string              `gorm:"type:text" json:"latest_update_notes"`
	Updates           []OpportunityUpdate `gorm:"foreignKey:OpportunityID" json:"updates,omitempty"`
}

// OpportunityUpdate is an append-only history row. Stage fields are nil for
// plain comments; StageFrom is nil for the creation row.
type OpportunityUpdate struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	OpportunityID uint      `gorm:"not null;index" json:"opportunity_id"`
	StageFrom     *Stage    `gorm:"size:50" json:"stage_from"`
	StageTo       *Stage    `gorm:"size:50" json:"stage_to"`
	Comment       string    `gorm:"type:text" json:"comment"`
}

const OpportunityCreatedComment = "Opportunity created"

// CreationUpdate is the history row recorded when the opportunity is created.
func (o *Opportunity) CreationUpdate() OpportunityUpdate {
	stage := o.Stage
	return OpportunityUpdate{
		OpportunityID: o.ID,
		StageTo:       &stage,
		Comment:       OpportunityCreatedComment,
	}
}

// ChangeStage moves the opportunity to next and returns the history row to
// append, or nil when the stage is unchanged. An empty comment is replaced by
// a synthesized one.
func (o *Opportunity) ChangeStage(next Stage, comment string) *OpportunityUpdate {
	prev := o.Stage
	if prev == next {
		return nil
	}
	o.Stage = next
	if strings.TrimSpace(comment) == "" {
		comment = fmt.Sprintf("Stage changed from %s to %s", prev, next)
	}
	return &OpportunityUpdate{
		OpportunityID: o.ID,
		StageFrom:     &prev,
		StageTo:       &next,
		Comment:       comment,
	}
}

func (o *Opportunity) IsLivePOV() bool {
	return o.POVStatus == POVActive
}

// ProductList is stored as a comma joined string.
type ProductList []Product

func (p ProductList) String() string {
	parts := make([]string, len(p))
	for i, prod := range p {
		parts[i] = string(prod)
	}
	return strings.Join(parts, ",")
}

func (p ProductList) Has(prod Product) bool {
	for _, x := range p {
		if x == prod {
			return true
		}
	}
	return false
}

func (p ProductList) Value() (driver.Value, error) {
	return p.String(), nil
}

func (p *ProductList) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*p = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductList", src)
	}
	list := ProductList{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, Product(part))
		}
	}
	*p = list
	return nil
}
