package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
)

// UpdateRoleRequest sets a user's role badge
type UpdateRoleRequest struct {
	Role models.Role `json:"role"`
}

// AdminUpdatePasteRequest is the moderation-side paste update. This is the
// only route that can touch the clown, admin-paste and pin flags.
type AdminUpdatePasteRequest struct {
	Title        *string    `json:"title"`
	Content      *string    `json:"content"`
	IsPrivate    *bool      `json:"isPrivate"`
	ExtraDetails *string    `json:"extraDetails"`
	IsClown      *bool      `json:"isClown"`
	IsAdminPaste *bool      `json:"isAdminPaste"`
	IsPinned     *bool      `json:"isPinned"`
	PinnedUntil  *time.Time `json:"pinnedUntil"`
}

// RestrictIPRequest blocks an address
type RestrictIPRequest struct {
	IP     string `json:"ip"`
	Reason string `json:"reason"`
}

// HandleAdminListUsers lists all users, including stored IP addresses.
func (s *Server) HandleAdminListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetUserActor(), &actors.ListUsersMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleAdminDeleteUser deletes a user. Admins may not delete themselves.
// The deleted user's pastes and comments are left in place with a dangling
// owner ID; the USER_DELETED audit snapshot is the record of who owned them.
func (s *Server) HandleAdminDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		userID, ok := pathID(w, r)
		if !ok {
			return
		}
		if userID == claims.UserID {
			respondError(w, utils.NewForbiddenError("admins cannot delete their own account"))
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.DeleteUserMsg{
			UserID:  userID,
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

// HandleUpdateRole assigns or clears a user's role badge.
func (s *Server) HandleUpdateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		userID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateRoleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if !req.Role.Valid() {
			respondError(w, utils.NewInvalidInputError("Unknown role"))
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.UpdateRoleMsg{
			UserID:  userID,
			Role:    req.Role,
			ActorID: claims.UserID,
			IP:      middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleAdminUpdatePaste applies a moderation update to any paste. Pinning
// requires a pinnedUntil strictly in the future; the pin later expiring is
// an ordering concern, not a stored state change.
func (s *Server) HandleAdminUpdatePaste() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		pasteID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req AdminUpdatePasteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.IsPinned != nil && *req.IsPinned {
			if req.PinnedUntil == nil || !req.PinnedUntil.After(time.Now()) {
				respondError(w, utils.NewInvalidInputError("Pinning requires a pinnedUntil in the future"))
				return
			}
		}

		result, err := s.ask(s.Engine.GetPasteActor(), &actors.UpdatePasteMsg{
			PasteID:      pasteID,
			ActorID:      claims.UserID,
			IP:           middleware.ClientIP(r),
			Title:        req.Title,
			Content:      req.Content,
			IsPrivate:    req.IsPrivate,
			ExtraDetails: req.ExtraDetails,
			IsClown:      req.IsClown,
			IsAdminPaste: req.IsAdminPaste,
			IsPinned:     req.IsPinned,
			PinnedUntil:  req.PinnedUntil,
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleRestrictIP blocks an address from using the API.
func (s *Server) HandleRestrictIP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())

		var req RestrictIPRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.IP = strings.TrimSpace(req.IP)
		if req.IP == "" {
			respondError(w, utils.NewInvalidInputError("IP is required"))
			return
		}

		result, err := s.ask(s.Engine.GetModerationActor(), &actors.RestrictIPMsg{
			IP:      req.IP,
			Reason:  req.Reason,
			ActorID: claims.UserID,
			ActorIP: middleware.ClientIP(r),
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

// HandleUnrestrictIP lifts an address block.
func (s *Server) HandleUnrestrictIP() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())
		ip := r.PathValue("ip")
		if ip == "" {
			respondError(w, utils.NewInvalidInputError("IP is required"))
			return
		}

		result, err := s.ask(s.Engine.GetModerationActor(), &actors.UnrestrictIPMsg{
			IP:      ip,
			ActorID: claims.UserID,
			ActorIP: middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}
		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
	}
}

// HandleListRestrictedIPs lists the current address blocks.
func (s *Server) HandleListRestrictedIPs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.ask(s.Engine.GetModerationActor(), &actors.ListRestrictedIPsMsg{})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}

// HandleAuditLogs serves the full ledger, optionally filtered by action or
// acting user.
func (s *Server) HandleAuditLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if action := r.URL.Query().Get("action"); action != "" {
			respondJSON(w, http.StatusOK, s.Recorder.ByAction(action))
			return
		}
		if userIDStr := r.URL.Query().Get("userId"); userIDStr != "" {
			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil {
				respondError(w, utils.NewInvalidInputError("Invalid userId"))
				return
			}
			respondJSON(w, http.StatusOK, s.Recorder.ByActor(userID))
			return
		}
		respondJSON(w, http.StatusOK, s.Recorder.All())
	}
}

// HandleDeletedUserLogs serves USER_DELETED entries.
func (s *Server) HandleDeletedUserLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Recorder.DeletedUsers())
	}
}

// HandleDeletedPasteLogs serves PASTE_DELETED entries.
func (s *Server) HandleDeletedPasteLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Recorder.DeletedPastes())
	}
}

// HandleEditLogs serves user and paste update entries.
func (s *Server) HandleEditLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, s.Recorder.EditLogs())
	}
}
