package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillSetDefaults(t *testing.T) {
	set := SkillSet{SkillPRA: ProficiencyExpert}

	assert.Equal(t, ProficiencyExpert, set.Level(SkillPRA))
	assert.Equal(t, ProficiencyNotStarted, set.Level(SkillEntitle))
	assert.Equal(t, ProficiencyNotStarted, SkillSet(nil).Level(SkillPRA))
}

func TestSkillSetMatches(t *testing.T) {
	set := SkillSet{SkillPRA: ProficiencyExpert, SkillInsights: ProficiencyTraining}

	assert.True(t, set.Matches(nil))
	assert.True(t, set.Matches(map[Skill]Proficiency{SkillPRA: ProficiencyExpert}))
	assert.True(t, set.Matches(map[Skill]Proficiency{SkillEntitle: ProficiencyNotStarted}))
	assert.False(t, set.Matches(map[Skill]Proficiency{SkillEntitle: ProficiencyExpert}))
	assert.False(t, set.Matches(map[Skill]Proficiency{
		SkillPRA:      ProficiencyExpert,
		SkillInsights: ProficiencyExpert,
	}))
}

func TestEnumsAreClosed(t *testing.T) {
	assert.True(t, RegionEMEA.Valid())
	assert.False(t, Region("Mars").Valid())
	assert.True(t, Stage("6").IsClosed())
	assert.False(t, Stage("7").Valid())
	assert.True(t, Mood("").Valid())
	assert.False(t, Flag("y").Valid())
	assert.Len(t, Skills, 8)
	for _, s := range Skills {
		assert.True(t, s.Valid(), s)
	}
	for i, p := range ProficiencyLevels {
		assert.Equal(t, i, p.Rank())
	}
	assert.Equal(t, -1, Proficiency("Guru").Rank())
	assert.Equal(t, Stage6, LegacyStages["Closed Lost"])
}

func TestSplitTags(t *testing.T) {
	n := &Note{Tags: " acme, requirements ,, discovery"}
	assert.Equal(t, []string{"acme", "requirements", "discovery"}, n.TagList())
	assert.Nil(t, SplitTags(""))
}
