package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteIsUnconditional(t *testing.T) {
	for _, status := range FollowUpStatuses {
		f := &FollowUp{Status: status}
		f.Complete()
		assert.Equal(t, FollowUpCompleted, f.Status)
	}
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	yesterday := &FollowUp{Status: FollowUpPending, DueDate: DateOf(today).AddDate(0, 0, -1)}
	dueToday := &FollowUp{Status: FollowUpInProgress, DueDate: DateOf(today)}
	doneLate := &FollowUp{Status: FollowUpCompleted, DueDate: DateOf(today).AddDate(0, 0, -3)}
	deferred := &FollowUp{Status: FollowUpDeferred, DueDate: DateOf(today).AddDate(0, 0, -3)}

	assert.True(t, yesterday.IsOverdue(today))
	assert.False(t, dueToday.IsOverdue(today))
	assert.False(t, doneLate.IsOverdue(today))
	assert.False(t, deferred.IsOverdue(today))
}

func TestRelatedRef(t *testing.T) {
	f := &FollowUp{}
	assert.True(t, f.Related().IsZero())

	f.SetRelated(RelatedRef{Type: RelatedOpportunity, ID: 4})
	assert.Equal(t, RelatedOpportunity, f.RelatedType)
	require.NotNil(t, f.RelatedID)
	assert.Equal(t, uint(4), *f.RelatedID)
	assert.Equal(t, RelatedRef{Type: RelatedOpportunity, ID: 4}, f.Related())

	f.SetRelated(RelatedRef{})
	assert.Equal(t, RelatedNone, f.RelatedType)
	assert.Nil(t, f.RelatedID)
}
