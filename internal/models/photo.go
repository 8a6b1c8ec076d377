package models

import (
	"time"

	"github.com/google/uuid"
)

// PhotoDB represents a photo record in the database.
type PhotoDB struct {
	PhotoID  uuid.UUID `json:"_id" db:"photo_id"`        // Primary key
	FileName string    `json:"file_name" db:"file_name"` // Storage reference
	DateTime time.Time `json:"date_time" db:"date_time"` // Creation timestamp
	UserID   uuid.UUID `json:"user_id" db:"user_id"`     // Owning user
}

// CommentDB represents one comment row. Comments belong to exactly one
// photo; user_id is a weak reference and may not resolve to a user.
type CommentDB struct {
	CommentID uuid.UUID `json:"_id" db:"comment_id"`
	PhotoID   uuid.UUID `json:"photo_id" db:"photo_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Comment   string    `json:"comment" db:"comment"`
	DateTime  time.Time `json:"date_time" db:"date_time"`
	Seq       int64     `json:"-" db:"seq"` // Append order within the photo
}

// CommentView is a comment enriched with the author's public projection.
// User is nil when the author id does not resolve.
type CommentView struct {
	CommentID uuid.UUID   `json:"_id"`
	Comment   string      `json:"comment"`
	DateTime  time.Time   `json:"date_time"`
	User      *UserPublic `json:"user"`
}

// PhotoView is the client-ready photo shape with its comments in append
// order.
type PhotoView struct {
	PhotoID  uuid.UUID     `json:"_id"`
	FileName string        `json:"file_name"`
	DateTime time.Time     `json:"date_time"`
	UserID   uuid.UUID     `json:"user_id"`
	Comments []CommentView `json:"comments"`
}
