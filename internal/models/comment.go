package models

import "time"

// Comment is a message left on a user's profile. UserID is the author and
// may be AnonymousUserID; ProfileUserID is the profile it was left on.
type Comment struct {
	ID            int64     `json:"id"`
	ProfileUserID int64     `json:"profileUserId"`
	UserID        int64     `json:"userId"`
	Content       string    `json:"content"`
	CreatedAt     time.Time `json:"createdAt"`
}
