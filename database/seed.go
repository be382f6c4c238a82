package database

import (
	"time"

	"seteam/models"

	"gorm.io/gorm"
)

// Seed inserts a small sample team. It does nothing when any team member
// already exists and reports whether data was written.
func Seed(db *gorm.DB, now time.Time) (bool, error) {
	var count int64
	if err := db.Model(&models.TeamMember{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	today := models.DateOf(now)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }
	dayPtr := func(offset int) *time.Time { d := day(offset); return &d }

	err := db.Transaction(func(tx *gorm.DB) error {
		members := []models.TeamMember{
			{Name: "Alice Johnson", Email: "alice@example.com", Region: models.RegionAmericas, AlignedRep: "Bob Smith", AlignedRep2: "Sarah Miller", Role: "Senior SE"},
			{Name: "Charlie Brown", Email: "charlie@example.com", Region: models.RegionEMEA, AlignedRep: "Diana Ross", Role: "SE"},
			{Name: "Eve Williams", Email: "eve@example.com", Region: models.RegionAPAC, AlignedRep: "Frank Chen", AlignedRep2: "Lisa Wang", Role: "SE Manager"},
		}
		if err := tx.Create(&members).Error; err != nil {
			return err
		}
		alice, charlie, eve := members[0].ID, members[1].ID, members[2].ID

		meetings := []models.OneOnOne{
			{TeamMemberID: alice, Date: day(-7), Notes: "Discussed Q4 goals and career development.", ActionItems: "- Complete training\n- Review pipeline", Mood: models.MoodGood},
			{TeamMemberID: charlie, Date: day(-3), Notes: "Weekly sync on active deals.", ActionItems: "- Follow up with Acme Corp\n- Prepare demo", Mood: models.MoodExcellent},
			{TeamMemberID: eve, Date: day(-1), Notes: "Team planning session.", ActionItems: "- Finalize Q1 roadmap", Mood: models.MoodNeutral},
		}
		if err := tx.Create(&meetings).Error; err != nil {
			return err
		}

		opps := []models.Opportunity{
			{Name: "Acme Corp Enterprise Deal", Account: "Acme Corporation", Stage: models.Stage4, Value: 150000, TeamMemberID: alice, CloseDate: dayPtr(30), POVStatus: models.POVActive, RFP: models.FlagNo, Demo: models.FlagYes},
			{Name: "TechStart Expansion", Account: "TechStart Inc", Stage: models.Stage3, Value: 75000, TeamMemberID: alice, CloseDate: dayPtr(45), POVStatus: models.POVNone, RFP: models.FlagNo, Demo: models.FlagYes},
			{Name: "Global Bank Platform", Account: "Global Bank", Stage: models.Stage5, Value: 500000, TeamMemberID: charlie, CloseDate: dayPtr(15), POVStatus: models.POVTechWin, RFP: models.FlagYes, Demo: models.FlagYes},
			{Name: "Retail Plus Integration", Account: "Retail Plus", Stage: models.Stage1, Value: 50000, TeamMemberID: eve, CloseDate: dayPtr(60), POVStatus: models.POVNone, RFP: models.FlagNo, Demo: models.FlagNo},
		}
		if err := tx.Create(&opps).Error; err != nil {
			return err
		}
		history := make([]models.OpportunityUpdate, 0, len(opps))
		for i := range opps {
			history = append(history, opps[i].CreationUpdate())
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		cases := []models.SupportCase{
			{Title: "Login Issues", Description: "Customer unable to log in after password reset", Status: models.CaseInProgress, Priority: models.PriorityHigh, TeamMemberID: alice, Customer: "Acme Corporation"},
			{Title: "API Integration Help", Description: "Need assistance with REST API setup", Status: models.CaseOpen, Priority: models.PriorityMedium, TeamMemberID: charlie, Customer: "TechStart Inc"},
			{Title: "Performance Optimization", Description: "Dashboard loading slowly", Status: models.CasePending, Priority: models.PriorityLow, TeamMemberID: eve, Customer: "Retail Plus"},
		}
		if err := tx.Create(&cases).Error; err != nil {
			return err
		}
		comment := models.SupportCaseComment{CaseID: cases[0].ID, Comment: "Investigating authentication service logs"}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		followUps := []models.FollowUp{
			{Title: "Send POC documentation", Description: "Prepare and send POC requirements document", DueDate: day(2), Status: models.FollowUpPending, Priority: models.PriorityHigh, TeamMemberID: &alice},
			{Title: "Schedule demo call", Description: "Set up demo with technical team", DueDate: day(5), Status: models.FollowUpPending, Priority: models.PriorityMedium, TeamMemberID: &charlie},
			{Title: "Review contract terms", Description: "Legal review of contract", DueDate: day(-1), Status: models.FollowUpInProgress, Priority: models.PriorityHigh, TeamMemberID: &charlie},
			{Title: "Training completion", Description: "Complete advanced product training", DueDate: day(14), Status: models.FollowUpPending, Priority: models.PriorityLow, TeamMemberID: &alice},
		}
		followUps[0].SetRelated(models.RelatedRef{Type: models.RelatedOpportunity, ID: opps[0].ID})
		followUps[2].SetRelated(models.RelatedRef{Type: models.RelatedOpportunity, ID: opps[2].ID})
		if err := tx.Create(&followUps).Error; err != nil {
			return err
		}

		notes := []models.Note{
			{Title: "Acme Corp Requirements", Content: "Key requirements from discovery call:\n- SSO integration required\n- 99.9% uptime SLA\n- Data residency in US\n- Support for 5000 users", Tags: "acme, requirements, discovery", TeamMemberID: &alice},
			{Title: "Competitive Analysis", Content: "Main competitors in this deal:\n- Competitor A: Strong in enterprise\n- Competitor B: Better pricing\n\nOur advantages: Integration capabilities, support quality", Tags: "competitive, strategy", TeamMemberID: &charlie},
			{Title: "Q4 Planning Notes", Content: "Team priorities for Q4:\n1. Close Acme deal\n2. Expand EMEA coverage\n3. Launch new demo environment\n4. Complete certifications", Tags: "planning, q4, team"},
		}
		if err := tx.Create(&notes).Error; err != nil {
			return err
		}

		matrix := map[uint][]models.Proficiency{
			alice:   {models.ProficiencyExpert, models.ProficiencyExpert, models.ProficiencyPOVReady, models.ProficiencyDemoReady, models.ProficiencyPOVReady, models.ProficiencyExpert, models.ProficiencyDemoReady, models.ProficiencyTraining},
			charlie: {models.ProficiencyPOVReady, models.ProficiencyDemoReady, models.ProficiencyTraining, models.ProficiencyPOVReady, models.ProficiencyDemoReady, models.ProficiencyTraining, models.ProficiencyNotStarted, models.ProficiencyNotStarted},
			eve:     {models.ProficiencyDemoReady, models.ProficiencyDemoReady, models.ProficiencyDemoReady, models.ProficiencyDemoReady, models.ProficiencyTraining, models.ProficiencyDemoReady, models.ProficiencyPOVReady, models.ProficiencyTraining},
		}
		var ratings []models.SkillRating
		for _, id := range []uint{alice, charlie, eve} {
			for i, skill := range models.Skills {
				ratings = append(ratings, models.SkillRating{TeamMemberID: id, Skill: skill, Proficiency: matrix[id][i]})
			}
		}
		return tx.Create(&ratings).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
