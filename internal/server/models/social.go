package models

import "time"

type Tweet struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type Comment struct {
	ID        string    `db:"id" json:"id"`
	VideoID   string    `db:"video_id" json:"videoId"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Like targets exactly one of a video, comment or tweet; the other two
// reference fields stay nil.
type Like struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"ownerId"`
	VideoID   *string   `db:"video_id" json:"videoId,omitempty"`
	CommentID *string   `db:"comment_id" json:"commentId,omitempty"`
	TweetID   *string   `db:"tweet_id" json:"tweetId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Playlist struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	VideoIDs    []string  `db:"-" json:"videos"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
