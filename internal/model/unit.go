package model

import (
	"github.com/google/uuid"
)

// Unit is a named content container inside a project, roughly a file.
// CommitID caches the id of the most recently created commit for the unit.
// It is maintained inside the same transaction as the commit insert, there
// is no database trigger involved.
type Unit struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index" json:"projectId"`
	Title     string     `gorm:"size:256;not null" json:"title"`
	CommitID  *uuid.UUID `gorm:"type:uuid" json:"commitId,omitempty"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Unit) TableName() string {
	return "unit"
}

// Source is one line-sequenced row of a unit's current, uncommitted content.
// Sequence numbers start at 0 and are unique per unit.
type Source struct {
	UnitID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"unitId"`
	Sq      int32     `gorm:"primaryKey;autoIncrement:false" json:"sq"`
	Content string    `json:"content"`
	Meta    string    `json:"meta"`

	Unit *Unit `gorm:"foreignKey:UnitID" json:"-"`
}

func (Source) TableName() string {
	return "source"
}
