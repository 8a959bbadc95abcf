package model

import "gorm.io/gorm"

// Migrate creates the tables in dependency order so the foreign key
// constraints can be declared as part of the migration.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Project{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Unit{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Source{}); err != nil {
		return err
	}

	if err := db.AutoMigrate(&Commit{}); err != nil {
		return err
	}

	return db.AutoMigrate(&Record{})
}
