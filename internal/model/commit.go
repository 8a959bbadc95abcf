package model

import (
	"time"

	"github.com/google/uuid"
)

// Commit is an immutable, timestamped snapshot event for a unit.
// Compression names the codec used to encode the content of the commit's
// records at rest.
type Commit struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UnitID      uuid.UUID `gorm:"type:uuid;not null;index" json:"unitId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	Compression string    `json:"-"`

	Unit *Unit `gorm:"foreignKey:UnitID" json:"-"`
}

func (Commit) TableName() string {
	return "commit"
}

// Record is one line-sequenced content row of a commit snapshot. Records are
// immutable children of their commit.
type Record struct {
	CommitID uuid.UUID `gorm:"type:uuid;primaryKey" json:"commitId"`
	Sq       int32     `gorm:"primaryKey;autoIncrement:false" json:"sq"`
	Content  string    `json:"content"`

	Commit *Commit `gorm:"foreignKey:CommitID" json:"-"`
}

func (Record) TableName() string {
	return "record"
}
