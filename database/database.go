package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/project-showcase-backend/models"
)

// ProfileStore is the profile persistence contract handlers depend on.
// FindBySubjectID returns (nil, nil) when no profile exists for the subject.
type ProfileStore interface {
	FindBySubjectID(subjectID string) (*models.Profile, error)
	Save(profile *models.Profile) error
}

// ProjectStore is the project persistence contract handlers depend on.
// Lookups return (nil, nil) for a missing project; list methods order by
// creation time descending.
type ProjectStore interface {
	FindByID(id uuid.UUID) (*models.Project, error)
	FindByOwner(subjectID string) ([]*models.Project, error)
	FindByFavoritedBy(subjectID string) ([]*models.Project, error)
	FindPage(offset, limit int) ([]*models.Project, int64, error)
	Add(project *models.Project) error
	Save(project *models.Project) error
	Delete(id uuid.UUID) error
}

type Database struct {
	profileRepo *ProfileRepo
	projectRepo *ProjectRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		profileRepo: NewProfileRepo(db),
		projectRepo: NewProjectRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}
