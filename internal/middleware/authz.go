package middleware

import "paste-swamp/internal/models"

// Authorization gate. These predicates run in the route layer; the store
// actors trust that the caller already checked.

// IsAuthenticated reports whether the request carries a session.
func IsAuthenticated(claims *Claims) bool {
	return claims != nil
}

// IsAdmin reports whether the session belongs to an administrator.
func IsAdmin(claims *Claims) bool {
	return claims != nil && claims.IsAdmin
}

// CanModifyPaste allows the paste owner and any admin.
func CanModifyPaste(claims *Claims, paste *models.Paste) bool {
	if claims == nil {
		return false
	}
	return claims.UserID == paste.UserID || claims.IsAdmin
}

// CanModifyUser allows the user themselves and any admin.
func CanModifyUser(claims *Claims, targetUserID int64) bool {
	if claims == nil {
		return false
	}
	return claims.UserID == targetUserID || claims.IsAdmin
}
