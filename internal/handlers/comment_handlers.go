package handlers

import (
	"net/http"
	"strings"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
)

// CreateCommentRequest represents a comment left on a profile
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// HandleGetProfileComments lists the comments on a user's profile.
func (s *Server) HandleGetProfileComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileUserID, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.GetProfileCommentsMsg{ProfileUserID: profileUserID})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleCreateComment creates a profile comment. Visitors without a session
// are stored under the anonymous author sentinel.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileUserID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req CreateCommentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			respondError(w, utils.NewInvalidInputError("Content is required"))
			return
		}

		authorID := models.AnonymousUserID
		if claims, ok := middleware.GetSessionFromContext(r.Context()); ok {
			authorID = claims.UserID
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			ProfileUserID: profileUserID,
			UserID:        authorID,
			Content:       req.Content,
			IP:            middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleDeleteComment removes a comment. Admin only.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		commentID, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := s.ask(s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
			CommentID: commentID,
			ActorID:   claims.UserID,
			IP:        middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}
