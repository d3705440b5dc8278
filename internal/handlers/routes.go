package handlers

import (
	"net/http"

	"paste-swamp/internal/middleware"
)

// Routes mounts the full HTTP surface. Authorization is layered here: the
// store actors behind these handlers never check permissions themselves.
func (s *Server) Routes(guard *middleware.IPRestrictionGuard, corsConfig *middleware.CORSConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.HandleHealth())

	// Sessions
	mux.HandleFunc("POST /auth/register", s.HandleRegister())
	mux.HandleFunc("POST /auth/login", s.HandleLogin())
	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(s.HandleMe()))

	// Pastes
	mux.HandleFunc("GET /pastes", s.HandleGetPublicPastes())
	mux.HandleFunc("GET /pastes/clown", s.HandleGetClownPastes())
	mux.HandleFunc("GET /pastes/search", s.HandleSearchPastes())
	mux.HandleFunc("GET /pastes/{id}", middleware.OptionalAuth(s.HandleGetPaste()))
	mux.HandleFunc("POST /pastes", middleware.RequireAuth(s.HandleCreatePaste()))
	mux.HandleFunc("PATCH /pastes/{id}", middleware.RequireAuth(s.HandleUpdatePaste()))
	mux.HandleFunc("DELETE /pastes/{id}", middleware.RequireAuth(s.HandleDeletePaste()))

	// Users and profiles
	mux.HandleFunc("GET /users", s.HandleGetAllUsers())
	mux.HandleFunc("GET /users/{id}", s.HandleGetUser())
	mux.HandleFunc("GET /users/{id}/pastes", middleware.OptionalAuth(s.HandleGetUserPastes()))
	mux.HandleFunc("PATCH /users/{id}/bio", middleware.RequireAuth(s.HandleUpdateBio()))
	mux.HandleFunc("POST /users/{id}/avatar", middleware.RequireAuth(s.HandleUploadAvatar()))

	// Profile comments
	mux.HandleFunc("GET /users/{id}/comments", s.HandleGetProfileComments())
	mux.HandleFunc("POST /users/{id}/comments", middleware.OptionalAuth(s.HandleCreateComment()))
	mux.HandleFunc("DELETE /comments/{id}", middleware.RequireAdmin(s.HandleDeleteComment()))

	// Suggestions
	mux.HandleFunc("POST /suggestions", middleware.RequireAuth(s.HandleCreateSuggestion()))
	mux.HandleFunc("GET /suggestions/user", middleware.RequireAuth(s.HandleGetOwnSuggestions()))
	mux.HandleFunc("GET /suggestions", middleware.RequireAdmin(s.HandleListSuggestions()))
	mux.HandleFunc("PATCH /suggestions/{id}", middleware.RequireAdmin(s.HandleRespondSuggestion()))

	// Admin
	mux.HandleFunc("GET /admin/users", middleware.RequireAdmin(s.HandleAdminListUsers()))
	mux.HandleFunc("DELETE /admin/users/{id}", middleware.RequireAdmin(s.HandleAdminDeleteUser()))
	mux.HandleFunc("PATCH /admin/users/{id}/role", middleware.RequireAdmin(s.HandleUpdateRole()))
	mux.HandleFunc("PATCH /admin/pastes/{id}", middleware.RequireAdmin(s.HandleAdminUpdatePaste()))
	mux.HandleFunc("POST /admin/ip-restrictions", middleware.RequireAdmin(s.HandleRestrictIP()))
	mux.HandleFunc("DELETE /admin/ip-restrictions/{ip}", middleware.RequireAdmin(s.HandleUnrestrictIP()))
	mux.HandleFunc("GET /admin/ip-restrictions", middleware.RequireAdmin(s.HandleListRestrictedIPs()))
	mux.HandleFunc("GET /admin/audit-logs", middleware.RequireAdmin(s.HandleAuditLogs()))
	mux.HandleFunc("GET /admin/audit-logs/deleted-users", middleware.RequireAdmin(s.HandleDeletedUserLogs()))
	mux.HandleFunc("GET /admin/audit-logs/deleted-pastes", middleware.RequireAdmin(s.HandleDeletedPasteLogs()))
	mux.HandleFunc("GET /admin/audit-logs/edits", middleware.RequireAdmin(s.HandleEditLogs()))

	// Live notifications
	mux.HandleFunc("GET /ws", s.HandleWebSocket())

	var handler http.Handler = mux
	if guard != nil {
		handler = guard.Middleware(handler)
	}
	handler = middleware.CORSMiddleware(corsConfig)(handler)
	handler = middleware.RequestLogger(s.Metrics)(handler)
	return handler
}
