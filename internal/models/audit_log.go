package models

import "time"

// Audit action taxonomy. One of these is recorded for every mutation.
const (
	ActionUserCreated         = "USER_CREATED"
	ActionUserUpdated         = "USER_UPDATED"
	ActionUserDeleted         = "USER_DELETED"
	ActionPasteCreated        = "PASTE_CREATED"
	ActionPasteUpdated        = "PASTE_UPDATED"
	ActionPasteDeleted        = "PASTE_DELETED"
	ActionCommentCreated      = "COMMENT_CREATED"
	ActionCommentDeleted      = "COMMENT_DELETED"
	ActionSuggestionCreated   = "SUGGESTION_CREATED"
	ActionSuggestionResponded = "SUGGESTION_RESPONDED"
	ActionRoleUpdated         = "ROLE_UPDATED"
	ActionIPRestricted        = "IP_RESTRICTED"
	ActionIPUnrestricted      = "IP_UNRESTRICTED"
)

// Target types referenced by audit entries.
const (
	TargetUser       = "user"
	TargetPaste      = "paste"
	TargetComment    = "comment"
	TargetSuggestion = "suggestion"
	TargetIP         = "ip"
)

// AuditLog is one immutable record of a mutation. Details holds the
// serialized before/after snapshot for the operation.
type AuditLog struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	UserID     int64     `json:"userId"`
	TargetID   int64     `json:"targetId,omitempty"`
	TargetType string    `json:"targetType,omitempty"`
	Details    string    `json:"details"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
