package repository

import (
	"context"

	"seteam/models"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	db        *gorm.DB
	now       Clock
	meetings  *OneOnOneRepository
	followUps *FollowUpRepository
}

// DashboardStats is computed from current rows on every call.
type DashboardStats struct {
	TeamMembers       int64
	LivePOVs          int64
	OpenOpportunities int64
	OpenCases         int64
	PendingFollowUps  int64
	OverdueFollowUps  []models.FollowUp
	RecentMeetings    []models.OneOnOne
	UpcomingFollowUps []models.FollowUp
}

func (s *DashboardStats) OverdueCount() int {
	return len(s.OverdueFollowUps)
}

const dashboardListSize = 5

func (r *DashboardRepository) Stats(ctx context.Context) (*DashboardStats, error) {
	db := withCtx(ctx, r.db)
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		where string
		args  []interface{}
	}{
		{&stats.TeamMembers, &models.TeamMember{}, "", nil},
		{&stats.LivePOVs, &models.Opportunity{}, "pov_status = ?", []interface{}{models.POVActive}},
		{&stats.OpenOpportunities, &models.Opportunity{}, "stage <> ?", []interface{}{models.StageClosed}},
		{&stats.OpenCases, &models.SupportCase{}, "status NOT IN ?", []interface{}{models.TerminalCaseStatuses}},
		{&stats.PendingFollowUps, &models.FollowUp{}, "status IN ?", []interface{}{models.OpenFollowUpStatuses}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	var err error
	if stats.OverdueFollowUps, err = r.followUps.Overdue(ctx, r.now()); err != nil {
		return nil, err
	}
	if stats.RecentMeetings, err = r.meetings.Recent(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if stats.UpcomingFollowUps, err = r.followUps.Upcoming(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	return stats, nil
}
