package model

import (
	"github.com/google/uuid"
)

// Project is the root entity. Units hang off a project.
type Project struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:256;not null" json:"name"`
}

func (Project) TableName() string {
	return "project"
}
