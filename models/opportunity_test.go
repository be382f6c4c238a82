package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeStageUnchanged(t *testing.T) {
	opp := &Opportunity{ID: 7, Stage: Stage2}

	assert.Nil(t, opp.ChangeStage(Stage2, "nothing to see"))
	assert.Equal(t, Stage2, opp.Stage)
}

func TestChangeStageSynthesizesComment(t *testing.T) {
	opp := &Opportunity{ID: 7, Stage: Stage1}

	update := opp.ChangeStage(Stage3, "")
	require.NotNil(t, update)
	assert.Equal(t, Stage3, opp.Stage)
	assert.Equal(t, uint(7), update.OpportunityID)
	require.NotNil(t, update.StageFrom)
	require.NotNil(t, update.StageTo)
	assert.Equal(t, Stage1, *update.StageFrom)
	assert.Equal(t, Stage3, *update.StageTo)
	assert.Equal(t, "Stage changed from 1 to 3", update.Comment)
}

func TestChangeStageKeepsComment(t *testing.T) {
	opp := &Opportunity{Stage: Stage5}

	update := opp.ChangeStage(Stage6, "Signed!")
	require.NotNil(t, update)
	assert.Equal(t, "Signed!", update.Comment)
	assert.True(t, opp.Stage.IsClosed())
}

func TestCreationUpdate(t *testing.T) {
	opp := &Opportunity{ID: 3, Stage: Stage1}

	update := opp.CreationUpdate()
	assert.Nil(t, update.StageFrom)
	require.NotNil(t, update.StageTo)
	assert.Equal(t, Stage1, *update.StageTo)
	assert.Equal(t, "Opportunity created", update.Comment)
}

func TestProductListScanAndValue(t *testing.T) {
	var list ProductList
	require.NoError(t, list.Scan("EPM, PRA,,Insights"))
	assert.Equal(t, ProductList{ProductEPM, ProductPRA, ProductInsights}, list)
	assert.True(t, list.Has(ProductPRA))
	assert.False(t, list.Has(ProductRS))

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "EPM,PRA,Insights", v)

	require.NoError(t, list.Scan([]byte("")))
	assert.Empty(t, list)

	require.NoError(t, list.Scan(nil))
	assert.Nil(t, list)

	assert.Error(t, list.Scan(42))
}
