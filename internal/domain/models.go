package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength bounds image and article titles.
const MaxTitleLength = 128

// User represents an author who can sign in and publish.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Article is a blog post written by a user.
type Article struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Abstract  string    `db:"abstract" json:"abstract"`
	Body      string    `db:"body" json:"body"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Image is the metadata record of one uploaded image and its three stored variants.
// Records are written once and never updated.
type Image struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	ThumbnailURL string     `db:"thumbnail_url" json:"thumbnail_url"`
	DisplayURL   string     `db:"display_url" json:"display_url"`
	OriginalURL  string     `db:"original_url" json:"original_url"`
	UploadedBy   *uuid.UUID `db:"uploaded_by" json:"uploaded_by,omitempty"`
	UploadedAt   time.Time  `db:"uploaded_at" json:"uploaded_at"`
}
