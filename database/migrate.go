package database

import (
	"seteam/models"

	"gorm.io/gorm"
)

// opportunityColumns were added to opportunities after the first release.
var opportunityColumns = []string{
	"salesforce_link",
	"confidence",
	"sales_rep",
	"products",
	"rfp",
	"demo",
	"pov_status",
	"latest_update_date",
	"latest_update_notes",
}

// UpgradeLegacy adds missing opportunity columns and rewrites free-text
// stages to the numeric scale. Fresh databases are left alone.
func UpgradeLegacy(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&models.Opportunity{}) {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		m := tx.Migrator()
		addedPOV := false
		for _, col := range opportunityColumns {
			if m.HasColumn(&models.Opportunity{}, col) {
				continue
			}
			if err := m.AddColumn(&models.Opportunity{}, col); err != nil {
				return err
			}
			if col == "pov_status" {
				addedPOV = true
			}
		}

		for old, stage := range models.LegacyStages {
			err := tx.Model(&models.Opportunity{}).
				Where("stage = ?", old).
				UpdateColumn("stage", stage).Error
			if err != nil {
				return err
			}
		}

		if addedPOV {
			err := tx.Model(&models.Opportunity{}).
				Where("pov_status IS NULL").
				UpdateColumn("pov_status", models.POVNone).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
