package database_test

import (
	"testing"
	"time"

	"seteam/database"
	"seteam/models"
	"seteam/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Migrate(db))

	for _, m := range database.Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestUpgradeLegacyOpportunities(t *testing.T) {
	db := testutil.NewDB(t)

	// Rebuild the opportunities table the way the first release shipped it.
	require.NoError(t, db.Migrator().DropTable(&models.Opportunity{}))
	require.NoError(t, db.Exec(`CREATE TABLE opportunities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(200) NOT NULL,
		account VARCHAR(200) NOT NULL,
		stage VARCHAR(50) NOT NULL,
		value REAL DEFAULT 0,
		team_member_id INTEGER NOT NULL,
		close_date DATE,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	require.NoError(t, db.Exec(`INSERT INTO opportunities (name, account, stage, team_member_id) VALUES
		('a', 'A', 'Prospecting', 1),
		('b', 'B', 'Qualification', 1),
		('c', 'C', 'Demo', 1),
		('d', 'D', 'POC', 1),
		('e', 'E', 'Negotiation', 1),
		('f', 'F', 'Closed Won', 1),
		('g', 'G', 'Closed Lost', 1),
		('h', 'H', '3', 1)`).Error)

	require.NoError(t, database.Migrate(db))

	for _, col := range []string{"salesforce_link", "confidence", "sales_rep", "products", "rfp", "demo", "pov_status", "latest_update_date", "latest_update_notes"} {
		assert.True(t, db.Migrator().HasColumn(&models.Opportunity{}, col), col)
	}

	var opps []models.Opportunity
	require.NoError(t, db.Order("id").Find(&opps).Error)
	require.Len(t, opps, 8)

	want := []models.Stage{"1", "2", "3", "4", "5", "6", "6", "3"}
	for i, opp := range opps {
		assert.Equal(t, want[i], opp.Stage, opp.Name)
		assert.Equal(t, models.POVNone, opp.POVStatus, opp.Name)
	}

	// A second run changes nothing.
	require.NoError(t, database.Migrate(db))
	var count int64
	db.Model(&models.Opportunity{}).Where("stage = ?", "6").Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestSeed(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	seeded, err := database.Seed(db, now)
	require.NoError(t, err)
	assert.True(t, seeded)

	counts := map[interface{}]int64{
		&models.TeamMember{}:         3,
		&models.OneOnOne{}:           3,
		&models.Opportunity{}:        4,
		&models.OpportunityUpdate{}:  4,
		&models.SupportCase{}:        3,
		&models.SupportCaseComment{}: 1,
		&models.FollowUp{}:           4,
		&models.Note{}:               3,
		&models.SkillRating{}:        24,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, db.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, "%T", model)
	}

	seeded, err = database.Seed(db, now)
	require.NoError(t, err)
	assert.False(t, seeded)
}
