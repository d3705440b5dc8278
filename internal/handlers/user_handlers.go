package handlers

import (
	"fmt"
	"net/http"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
)

// UpdateBioRequest represents a bio edit
type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

// UserProfileResponse decorates a user with the presentation metadata for
// their role badge.
type UserProfileResponse struct {
	*models.User
	RoleBadge *models.RoleBadge `json:"roleBadge,omitempty"`
}

// sanitizeUser strips the stored IP address for non-admin consumers. The
// password never serializes regardless.
func sanitizeUser(user *models.User) *models.User {
	clean := *user
	clean.IPAddress = ""
	return &clean
}

// HandleGetAllUsers handles requests to list all users
func (s *Server) HandleGetAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetUserActor(), &actors.ListUsersMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}

		users := result.([]*models.User)
		sanitized := make([]*models.User, len(users))
		for i, user := range users {
			sanitized[i] = sanitizeUser(user)
		}
		respondJSON(w, http.StatusOK, sanitized)
	}
}

// HandleGetUser handles requests to get a user's profile
func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.GetUserMsg{UserID: userID})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}

		user := sanitizeUser(result.(*models.User))
		respondJSON(w, http.StatusOK, &UserProfileResponse{User: user, RoleBadge: user.Role.Badge()})
	}
}

// HandleGetUserPastes lists a user's pastes; private ones only show for the
// owner or an admin.
func (s *Server) HandleGetUserPastes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := pathID(w, r)
		if !ok {
			return
		}

		msg := &actors.GetUserPastesMsg{OwnerID: ownerID}
		if claims, ok := middleware.GetSessionFromContext(r.Context()); ok {
			msg.ViewerID = claims.UserID
			msg.ViewerIsAdmin = claims.IsAdmin
		}

		result, err := s.ask(s.Engine.GetPasteActor(), msg)
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleUpdateBio handles bio edits by the user or an admin.
func (s *Server) HandleUpdateBio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		userID, ok := pathID(w, r)
		if !ok {
			return
		}
		if !middleware.CanModifyUser(claims, userID) {
			respondError(w, utils.NewForbiddenError("cannot edit another user's profile"))
			return
		}

		var req UpdateBioRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.UpdateUserMsg{
			UserID:  userID,
			ActorID: claims.UserID,
			IP:      middleware.ClientIP(r),
			Bio:     &req.Bio,
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleUploadAvatar accepts a multipart avatar upload. The file bytes are
// discarded; only the derived avatar URL is stored on the profile.
func (s *Server) HandleUploadAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		userID, ok := pathID(w, r)
		if !ok {
			return
		}
		if !middleware.CanModifyUser(claims, userID) {
			respondError(w, utils.NewForbiddenError("cannot edit another user's profile"))
			return
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			respondError(w, utils.NewInvalidInputError("Invalid multipart form"))
			return
		}
		file, _, err := r.FormFile("avatar")
		if err != nil {
			respondError(w, utils.NewInvalidInputError("avatar file is required"))
			return
		}
		file.Close()

		avatarURL := fmt.Sprintf("/avatars/%d", userID)
		result, err := s.ask(s.Engine.GetUserActor(), &actors.UpdateUserMsg{
			UserID:    userID,
			ActorID:   claims.UserID,
			IP:        middleware.ClientIP(r),
			AvatarURL: &avatarURL,
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}
