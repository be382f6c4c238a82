package repository

import (
	"context"

	"seteam/models"
)

// MemberOverview is everything the 1:1 page shows for a single member.
type MemberOverview struct {
	Member            models.TeamMember
	Meetings          []models.OneOnOne
	OpenOpportunities []models.Opportunity
	OpenCases         []models.SupportCase
	LivePOVs          []models.Opportunity
	Skills            models.SkillSet
	FollowUps         []models.FollowUp
	Notes             []models.Note
}

func (s *Store) MemberOverview(ctx context.Context, memberID uint) (*MemberOverview, error) {
	member, err := s.Members.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	ov := &MemberOverview{Member: *member}

	if ov.Meetings, err = s.Meetings.List(ctx, MeetingFilter{TeamMemberID: memberID}); err != nil {
		return nil, err
	}
	if ov.OpenOpportunities, err = s.Opportunities.List(ctx, OpportunityFilter{TeamMemberID: memberID, OpenOnly: true}); err != nil {
		return nil, err
	}
	if ov.OpenCases, err = s.Cases.List(ctx, CaseFilter{TeamMemberID: memberID, OpenOnly: true}); err != nil {
		return nil, err
	}
	if ov.LivePOVs, err = s.Opportunities.List(ctx, OpportunityFilter{TeamMemberID: memberID, POVStatus: models.POVActive}); err != nil {
		return nil, err
	}
	if ov.Skills, err = s.Skills.SkillSet(ctx, memberID); err != nil {
		return nil, err
	}
	if ov.FollowUps, err = s.FollowUps.List(ctx, FollowUpFilter{TeamMemberID: memberID, NotCompleted: true}); err != nil {
		return nil, err
	}
	if ov.Notes, err = s.Notes.List(ctx, NoteFilter{TeamMemberID: memberID}); err != nil {
		return nil, err
	}
	return ov, nil
}
