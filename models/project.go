package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is stored as one row with its engagement data embedded in JSONB
// columns, document style. Mutations load the row, edit the slices in memory
// and save the whole thing back.
type Project struct {
	ID          uuid.UUID                    `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                       `json:"title" db:"title" gorm:"type:text;not null"`
	Description string                       `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Tags        datatypes.JSONSlice[string]  `json:"tags" db:"tags" gorm:"type:jsonb"`
	GithubLink  string                       `json:"githubLink" db:"github_link" gorm:"type:text;not null;default:''"`
	LiveDemo    string                       `json:"liveDemo" db:"live_demo" gorm:"type:text;not null;default:''"`
	OwnerID     string                       `json:"ownerId" db:"owner_id" gorm:"type:text;not null;index"`
	AuthorName  string                       `json:"authorName" db:"author_name" gorm:"type:text;not null"`
	AuthorBio   string                       `json:"authorBio" db:"author_bio" gorm:"type:text;not null"`
	LikedBy     datatypes.JSONSlice[string]  `json:"likedBy" db:"liked_by" gorm:"type:jsonb"`
	FavoritedBy datatypes.JSONSlice[string]  `json:"favoritedBy" db:"favorited_by" gorm:"type:jsonb"`
	Comments    datatypes.JSONSlice[Comment] `json:"comments" db:"comments" gorm:"type:jsonb"`
	Ratings     datatypes.JSONSlice[Rating]  `json:"ratings" db:"ratings" gorm:"type:jsonb"`
	CreatedAt   time.Time                    `json:"createdAt" db:"created_at" gorm:"index"`
	UpdatedAt   time.Time                    `json:"updatedAt" db:"updated_at"`
}

// Comment lives inside a project's comments array. Stored order is append
// order; listing endpoints sort newest-first at presentation time.
type Comment struct {
	CommentID   uuid.UUID `json:"commentId"`
	AuthorID    string    `json:"authorId"`
	AuthorEmail string    `json:"authorEmail"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Rating lives inside a project's ratings array, at most one entry per rater.
type Rating struct {
	RaterID string `json:"raterId"`
	Value   int    `json:"value"`
}
