package models

import "time"

// AnonymousUserID is the author sentinel stored on comments left by
// visitors without a session.
const AnonymousUserID int64 = 0

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	IPAddress string    `json:"ipAddress,omitempty"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	IsAdmin   bool      `json:"isAdmin"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
