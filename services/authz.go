package services

import (
	"strings"

	"github.com/rpupo63/project-showcase-backend/models"
)

// Authorization guards. All of them are pure allow/deny predicates; handlers
// translate a deny into 403 and keep it distinct from 404.

// CanEditProject allows mutation of a project's own fields (title, description,
// tags, links) only by its owner. Ownership never changes after creation.
func CanEditProject(project *models.Project, requesterID string) bool {
	if project == nil || requesterID == "" {
		return false
	}
	return project.OwnerID == requesterID
}

// CanDeleteComment allows removal by the comment's author or the project owner.
func CanDeleteComment(project *models.Project, comment models.Comment, requesterID string) bool {
	if project == nil || requesterID == "" {
		return false
	}
	return comment.AuthorID == requesterID || project.OwnerID == requesterID
}

// CanCreateProject requires an existing profile with non-empty name and bio
// after trimming. The stored IsComplete flag is not trusted here; the check
// runs against the fields themselves.
func CanCreateProject(profile *models.Profile) bool {
	if profile == nil {
		return false
	}
	return strings.TrimSpace(profile.Name) != "" && strings.TrimSpace(profile.Bio) != ""
}
