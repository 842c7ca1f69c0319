package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
)

// Engagement operations on a project's embedded arrays. Each returns a new
// slice; callers assign the result back and persist the whole project.

// ToggleMembership flips the presence of id in a subject-id set. Returns the
// new set and whether id is a member afterwards. Toggling twice restores the
// original membership.
func ToggleMembership(set []string, id string) ([]string, bool) {
	for i, member := range set {
		if member == id {
			return append(set[:i:i], set[i+1:]...), false
		}
	}
	return append(set[:len(set):len(set)], id), true
}

// ApplyRating upserts the rater's entry: an existing entry is replaced in
// place (position preserved), otherwise the rating is appended. Values outside
// [1,5] are rejected.
func ApplyRating(ratings []models.Rating, raterID string, value int) ([]models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, errs.NewInvalidRatingError(value)
	}

	for i, rating := range ratings {
		if rating.RaterID == raterID {
			updated := make([]models.Rating, len(ratings))
			copy(updated, ratings)
			updated[i].Value = value
			return updated, nil
		}
	}
	return append(ratings[:len(ratings):len(ratings)], models.Rating{RaterID: raterID, Value: value}), nil
}

// NewComment builds a comment for the verified identity. Text is stored as
// provided; the boundary decides what it accepts.
func NewComment(authorID, authorEmail, text string, now time.Time) models.Comment {
	return models.Comment{
		CommentID:   uuid.New(),
		AuthorID:    authorID,
		AuthorEmail: authorEmail,
		Text:        text,
		CreatedAt:   now,
	}
}

// RemoveComment deletes the comment with the given id, preserving the relative
// order of the rest. ok is false when no comment matches.
func RemoveComment(comments []models.Comment, commentID uuid.UUID) (remaining []models.Comment, removed models.Comment, ok bool) {
	for i, comment := range comments {
		if comment.CommentID == commentID {
			remaining = make([]models.Comment, 0, len(comments)-1)
			remaining = append(remaining, comments[:i]...)
			remaining = append(remaining, comments[i+1:]...)
			return remaining, comment, true
		}
	}
	return comments, models.Comment{}, false
}
