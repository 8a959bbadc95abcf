package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GetDb opens the Postgres handle the store runs on.
func GetDb(cnf Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cnf.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	return db
}
