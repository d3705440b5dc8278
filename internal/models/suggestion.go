package models

import "time"

type SuggestionStatus string

const (
	SuggestionPending     SuggestionStatus = "pending"
	SuggestionApproved    SuggestionStatus = "approved"
	SuggestionRejected    SuggestionStatus = "rejected"
	SuggestionImplemented SuggestionStatus = "implemented"
)

func (s SuggestionStatus) Valid() bool {
	switch s {
	case SuggestionPending, SuggestionApproved, SuggestionRejected, SuggestionImplemented:
		return true
	}
	return false
}

type Suggestion struct {
	ID            int64            `json:"id"`
	UserID        int64            `json:"userId"`
	Title         string           `json:"title"`
	Content       string           `json:"content"`
	Status        SuggestionStatus `json:"status"`
	AdminResponse string           `json:"adminResponse,omitempty"`
	AdminID       int64            `json:"adminId,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}
