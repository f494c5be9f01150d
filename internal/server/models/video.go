package models

import "time"

// Video references its media files by object-storage key; callers obtain
// presigned URLs to read or write the actual content.
type Video struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	FileKey     string    `db:"file_key" json:"fileKey"`
	Thumbnail   string    `db:"thumbnail" json:"thumbnail"`
	Duration    float64   `db:"duration" json:"duration"`
	Views       int64     `db:"views" json:"views"`
	IsPublished bool      `db:"is_published" json:"isPublished"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
