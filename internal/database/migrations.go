package database

import (
	"fmt"

	"gorm.io/gorm"
)

// SchemaVersion is stored in PRAGMA user_version. Files written by a newer
// build are refused rather than read with a schema we don't know.
const SchemaVersion = 1

var schemaV1 = []string{
	"CREATE TABLE IF NOT EXISTS `clients` (" +
		"`id` INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL, " +
		"`name` TEXT NOT NULL, " +
		"`address` TEXT NOT NULL, " +
		"`phoneNumber` TEXT NOT NULL, " +
		"`email` TEXT NOT NULL, " +
		"`powerOfAttorneyNumber` TEXT NOT NULL, " +
		"`powerOfAttorneyImageUri` TEXT, " +
		"`documents` TEXT NOT NULL, " +
		"`images` TEXT NOT NULL)",

	// Blank emails are exempt so several clients may omit one.
	"CREATE UNIQUE INDEX IF NOT EXISTS `index_clients_email` ON `clients` (`email`) WHERE `email` <> ''",
	"CREATE INDEX IF NOT EXISTS `index_clients_phoneNumber` ON `clients` (`phoneNumber`)",

	"CREATE TABLE IF NOT EXISTS `cases` (" +
		"`id` INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL, " +
		"`caseNumber` TEXT NOT NULL, " +
		"`caseYear` TEXT NOT NULL, " +
		"`registrationDate` TEXT NOT NULL, " +
		"`clientId` INTEGER NOT NULL, " +
		"`clientRole` TEXT NOT NULL, " +
		"`opponentName` TEXT NOT NULL, " +
		"`opponentRole` TEXT NOT NULL, " +
		"`caseSubject` TEXT NOT NULL, " +
		"`courtName` TEXT NOT NULL, " +
		"`caseType` TEXT NOT NULL, " +
		"`firstSessionDate` TEXT NOT NULL, " +
		"`documents` TEXT NOT NULL, " +
		"`images` TEXT NOT NULL, " +
		"FOREIGN KEY(`clientId`) REFERENCES `clients`(`id`) ON UPDATE NO ACTION ON DELETE CASCADE)",

	"CREATE INDEX IF NOT EXISTS `index_cases_clientId` ON `cases` (`clientId`)",
}

// Migrate creates the schema on a fresh file and checks the version of an
// existing one.
func Migrate(db *gorm.DB) error {
	version, err := UserVersion(db)
	if err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range schemaV1 {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to apply schema: %w", err)
			}
		}
		if version < SchemaVersion {
			if err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)).Error; err != nil {
				return fmt.Errorf("failed to set schema version: %w", err)
			}
		}
		return nil
	})
}

// UserVersion reads PRAGMA user_version.
func UserVersion(db *gorm.DB) (int, error) {
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
