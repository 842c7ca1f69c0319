package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rpupo63/project-showcase-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindByID returns a project by its ID, or (nil, nil) when it does not exist.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByOwner returns all projects created by a subject, newest first.
func (r *ProjectRepo) FindByOwner(subjectID string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Where("owner_id = ?", subjectID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByFavoritedBy returns all projects whose favorited_by array contains the
// subject, newest first. Uses a JSONB containment query on the embedded array.
func (r *ProjectRepo) FindByFavoritedBy(subjectID string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.
		Where(datatypes.JSONArrayQuery("favorited_by").Contains(subjectID)).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindPage returns one page of projects ordered by creation time descending,
// along with the total project count.
func (r *ProjectRepo) FindPage(offset, limit int) ([]*models.Project, int64, error) {
	var total int64
	if err := r.db.Model(&models.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := r.db.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&projects).Error
	return projects, total, err
}

// Add inserts a new project.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Save overwrites the stored row with the given in-memory snapshot. Two
// concurrent writers to the same project can lose one update (last write
// wins); callers accept that, there is no conditional update here.
func (r *ProjectRepo) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project by id.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}
