package models

import "time"

type Paste struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	UserID       int64      `json:"userId"`
	IsPrivate    bool       `json:"isPrivate"`
	IsClown      bool       `json:"isClown"`
	IsAdminPaste bool       `json:"isAdminPaste"`
	IsPinned     bool       `json:"isPinned"`
	PinnedUntil  *time.Time `json:"pinnedUntil,omitempty"`
	ExtraDetails string     `json:"extraDetails,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// PinActiveAt reports whether the pin still sorts the paste to the top.
// An expired pin stays set in storage; only the ordering stops honoring it.
func (p *Paste) PinActiveAt(now time.Time) bool {
	return p.IsPinned && p.PinnedUntil != nil && p.PinnedUntil.After(now)
}
