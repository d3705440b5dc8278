package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
	"paste-swamp/internal/websocket"
)

// CreatePasteRequest represents a request to create a new paste
type CreatePasteRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	IsPrivate    bool   `json:"isPrivate"`
	IsAdminPaste bool   `json:"isAdminPaste"`
	ExtraDetails string `json:"extraDetails"`
}

// UpdatePasteRequest is the owner-facing partial update. Moderation flags
// are deliberately absent; those go through the admin route.
type UpdatePasteRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	IsPrivate    *bool   `json:"isPrivate"`
	ExtraDetails *string `json:"extraDetails"`
}

// HandleGetPublicPastes serves the public feed, actively pinned pastes first.
func (s *Server) HandleGetPublicPastes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetPasteActor(), &actors.GetPublicPastesMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleGetClownPastes serves the clown feed regardless of privacy.
func (s *Server) HandleGetClownPastes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetPasteActor(), &actors.GetClownPastesMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleSearchPastes searches public pastes by title substring.
func (s *Server) HandleSearchPastes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		result, err := s.ask(s.Engine.GetPasteActor(), &actors.SearchPastesMsg{Query: query})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleGetPaste serves one paste. Private pastes are only visible to their
// owner and admins; everyone else gets 403.
func (s *Server) HandleGetPaste() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pasteID, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := s.ask(s.Engine.GetPasteActor(), &actors.GetPasteMsg{PasteID: pasteID})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}

		paste := result.(*models.Paste)
		if paste.IsPrivate {
			claims, _ := middleware.GetSessionFromContext(r.Context())
			if !middleware.CanModifyPaste(claims, paste) {
				respondError(w, utils.NewForbiddenError("this paste is private"))
				return
			}
		}
		respondJSON(w, http.StatusOK, paste)
	}
}

// HandleCreatePaste handles paste creation. When an admin flags the paste
// as an admin paste, every live websocket connection is notified.
func (s *Server) HandleCreatePaste() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())

		var req CreatePasteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Title) == "" || req.Content == "" {
			respondError(w, utils.NewInvalidInputError("Title and content are required"))
			return
		}
		if req.IsAdminPaste && !claims.IsAdmin {
			respondError(w, utils.NewForbiddenError("only admins can create admin pastes"))
			return
		}

		result, err := s.ask(s.Engine.GetPasteActor(), &actors.CreatePasteMsg{
			Title:        req.Title,
			Content:      req.Content,
			UserID:       claims.UserID,
			IsPrivate:    req.IsPrivate,
			IsAdminPaste: req.IsAdminPaste,
			ExtraDetails: req.ExtraDetails,
			IP:           middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}

		paste := result.(*models.Paste)
		if paste.IsAdminPaste {
			s.broadcastAdminPaste(paste, claims.Username)
		}
		respondJSON(w, http.StatusCreated, paste)
	}
}

// HandleUpdatePaste handles owner/admin edits to a paste.
func (s *Server) HandleUpdatePaste() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		pasteID, ok := pathID(w, r)
		if !ok {
			return
		}

		paste, appErr := s.fetchPaste(pasteID)
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if !middleware.CanModifyPaste(claims, paste) {
			respondError(w, utils.NewForbiddenError("not the paste owner"))
			return
		}

		var req UpdatePasteRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := s.ask(s.Engine.GetPasteActor(), &actors.UpdatePasteMsg{
			PasteID:      pasteID,
			ActorID:      claims.UserID,
			IP:           middleware.ClientIP(r),
			Title:        req.Title,
			Content:      req.Content,
			IsPrivate:    req.IsPrivate,
			ExtraDetails: req.ExtraDetails,
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleDeletePaste handles owner/admin deletion of a paste.
func (s *Server) HandleDeletePaste() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		pasteID, ok := pathID(w, r)
		if !ok {
			return
		}

		paste, appErr := s.fetchPaste(pasteID)
		if appErr != nil {
			respondError(w, appErr)
			return
		}
		if !middleware.CanModifyPaste(claims, paste) {
			respondError(w, utils.NewForbiddenError("not the paste owner"))
			return
		}

		result, err := s.ask(s.Engine.GetPasteActor(), &actors.DeletePasteMsg{
			PasteID: pasteID,
			ActorID: claims.UserID,
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
		respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

// fetchPaste loads a paste for an authorization check before a mutation.
func (s *Server) fetchPaste(pasteID int64) (*models.Paste, *utils.AppError) {
	result, err := s.ask(s.Engine.GetPasteActor(), &actors.GetPasteMsg{PasteID: pasteID})
	if err != nil {
		return nil, utils.NewAppError(utils.ErrActorTimeout, "store unavailable", err)
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result.(*models.Paste), nil
}

func (s *Server) broadcastAdminPaste(paste *models.Paste, authorName string) {
	notice := websocket.NewAdminPasteNotice(paste.ID, authorName)
	payload, err := json.Marshal(notice)
	if err != nil {
		log.Printf("Failed to serialize admin paste notice: %v", err)
		return
	}
	s.Hub.BroadcastMessage(payload)
	log.Printf("Broadcast admin paste %d to %d connections", paste.ID, s.Hub.ConnectionCount())
}
