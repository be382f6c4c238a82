package database

import (
	"fmt"

	"seteam/config"
	"seteam/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the configured store without touching the schema.
func Open(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if driver == config.DriverSQLite {
		// One connection keeps SQLite writers from tripping over each other.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Init opens the database, brings the schema up to date and stores the
// handle for GetDB.
func Init(cfg *config.Config) error {
	level := logger.Warn
	if cfg.LogLevel == "debug" {
		level = logger.Info
	}

	db, err := Open(cfg.DatabaseDriver, cfg.DatabaseURL, level)
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}
	DB = db
	return nil
}

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.TeamMember{},
		&models.OneOnOne{},
		&models.Opportunity{},
		&models.OpportunityUpdate{},
		&models.SupportCase{},
		&models.SupportCaseComment{},
		&models.FollowUp{},
		&models.Note{},
		&models.SkillRating{},
	}
}

// Migrate upgrades legacy installations and then auto migrates the schema.
// Safe to run on every start.
func Migrate(db *gorm.DB) error {
	if err := UpgradeLegacy(db); err != nil {
		return fmt.Errorf("legacy upgrade: %w", err)
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
