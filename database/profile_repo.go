package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/project-showcase-backend/models"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindBySubjectID returns the profile for a subject, or (nil, nil) when none exists yet.
func (r *ProfileRepo) FindBySubjectID(subjectID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "subject_id = ?", subjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save upserts the profile keyed by subject ID.
func (r *ProfileRepo) Save(profile *models.Profile) error {
	return r.db.Save(profile).Error
}
