package models

import (
	"strings"
	"time"
)

// Profile holds the showcase profile for one authenticated user. The subject ID
// comes from the identity provider and is the only key we ever look profiles up by.
type Profile struct {
	SubjectID  string    `json:"subjectId" db:"subject_id" gorm:"type:text;primaryKey;not null"`
	Email      string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Name       string    `json:"name" db:"name" gorm:"type:text;not null;default:''"`
	Bio        string    `json:"bio" db:"bio" gorm:"type:text;not null;default:''"`
	IsComplete bool      `json:"isComplete" db:"is_complete" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// RecomputeComplete refreshes IsComplete: a profile is complete once both name
// and bio are non-empty after trimming whitespace.
func (p *Profile) RecomputeComplete() {
	p.IsComplete = strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Bio) != ""
}
