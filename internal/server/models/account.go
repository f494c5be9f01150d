package models

import "time"

// Account is the persisted user record. PasswordHash and RefreshToken never
// leave the server: JSON serialization skips both.
//
// RefreshToken holds the single currently valid refresh token for the
// account, or nil when the account has no active session.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	Fullname     string    `db:"fullname" json:"fullname"`
	Avatar       string    `db:"avatar" json:"avatar"`
	CoverImage   string    `db:"cover_image" json:"coverImage"`
	PasswordHash string    `db:"password_hash" json:"-"`
	RefreshToken *string   `db:"refresh_token" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
