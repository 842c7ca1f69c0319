package services

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/project-showcase-backend/models"
)

// ProjectView is the response shape for a project: the stored fields plus the
// per-request derived ones. The raw membership arrays never leave the server.
type ProjectView struct {
	ID                     uuid.UUID `json:"id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description"`
	Tags                   []string  `json:"tags"`
	GithubLink             string    `json:"githubLink"`
	LiveDemo               string    `json:"liveDemo"`
	OwnerID                string    `json:"ownerId"`
	AuthorName             string    `json:"authorName"`
	AuthorBio              string    `json:"authorBio"`
	Likes                  int       `json:"likes"`
	LikedByCurrentUser     bool      `json:"likedByCurrentUser"`
	FavoritedByCurrentUser bool      `json:"favoritedByCurrentUser"`
	CommentCount           int       `json:"commentCount"`
	AverageRating          float64   `json:"averageRating"`
	UserRating             int       `json:"userRating"`
	CreatedAt              time.Time `json:"createdAt"`
}

// Materialize turns a stored project into its view for the given requester.
// requesterID is empty for anonymous requests, which makes every per-user
// field its zero value. Pure: the project is not modified.
func Materialize(project *models.Project, requesterID string) ProjectView {
	view := ProjectView{
		ID:            project.ID,
		Title:         project.Title,
		Description:   project.Description,
		Tags:          project.Tags,
		GithubLink:    project.GithubLink,
		LiveDemo:      project.LiveDemo,
		OwnerID:       project.OwnerID,
		AuthorName:    project.AuthorName,
		AuthorBio:     project.AuthorBio,
		Likes:         len(project.LikedBy),
		CommentCount:  len(project.Comments),
		AverageRating: AverageRating(project.Ratings),
		CreatedAt:     project.CreatedAt,
	}
	if view.Tags == nil {
		view.Tags = []string{}
	}

	if requesterID != "" {
		view.LikedByCurrentUser = Contains(project.LikedBy, requesterID)
		view.FavoritedByCurrentUser = Contains(project.FavoritedBy, requesterID)
		for _, rating := range project.Ratings {
			if rating.RaterID == requesterID {
				view.UserRating = rating.Value
				break
			}
		}
	}

	return view
}

// MaterializeOwned is the "my projects" view: identical to Materialize except
// that owners always see their own projects as liked, whether or not they are
// in the likedBy array. Deliberate product behavior, not an oversight.
func MaterializeOwned(project *models.Project, ownerID string) ProjectView {
	view := Materialize(project, ownerID)
	view.LikedByCurrentUser = true
	return view
}

// MaterializeAll maps Materialize over a list, preserving order.
func MaterializeAll(projects []*models.Project, requesterID string) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, Materialize(project, requesterID))
	}
	return views
}

// AverageRating returns the arithmetic mean of all rating values rounded to
// one decimal place, or 0 when there are no ratings. math.Round rounds halves
// away from zero, which for these positive means is round-half-up.
func AverageRating(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, rating := range ratings {
		sum += rating.Value
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// Contains reports membership of id in a subject-id set stored as a slice.
func Contains(set []string, id string) bool {
	for _, member := range set {
		if member == id {
			return true
		}
	}
	return false
}
