package handlers

import (
	"net/http"
	"strings"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
)

// CreateSuggestionRequest represents a feature suggestion
type CreateSuggestionRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RespondSuggestionRequest is the admin response to a suggestion
type RespondSuggestionRequest struct {
	Status   models.SuggestionStatus `json:"status"`
	Response string                  `json:"response"`
}

// HandleCreateSuggestion handles suggestion submission.
func (s *Server) HandleCreateSuggestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())

		var req CreateSuggestionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
			respondError(w, utils.NewInvalidInputError("Title and content are required"))
			return
		}

		result, err := s.ask(s.Engine.GetSuggestionActor(), &actors.CreateSuggestionMsg{
			UserID:  claims.UserID,
			Title:   req.Title,
			Content: req.Content,
			IP:      middleware.ClientIP(r),
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

// HandleGetOwnSuggestions lists the current user's suggestions.
func (s *Server) HandleGetOwnSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())

		result, err := s.ask(s.Engine.GetSuggestionActor(), &actors.GetUserSuggestionsMsg{UserID: claims.UserID})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleListSuggestions lists every suggestion. Admin only.
func (s *Server) HandleListSuggestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetSuggestionActor(), &actors.ListSuggestionsMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleRespondSuggestion sets the status and response text. Admin only.
func (s *Server) HandleRespondSuggestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		suggestionID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req RespondSuggestionRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Status == "" || !req.Status.Valid() {
			respondError(w, utils.NewInvalidInputError("Invalid suggestion status"))
			return
		}

		result, err := s.ask(s.Engine.GetSuggestionActor(), &actors.RespondSuggestionMsg{
			SuggestionID: suggestionID,
			AdminID:      claims.UserID,
			Status:       req.Status,
			Response:     req.Response,
			IP:           middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}
