package handlers

import (
	"net/http"
	"strings"

	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/middleware"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"
)

// RegisterRequest represents a request to register a new user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the session token and the user it belongs to
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleRegister handles requests to register a new user
func (s *Server) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			respondError(w, utils.NewInvalidInputError("Username and password are required"))
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Username:  req.Username,
			Password:  req.Password,
			IPAddress: middleware.ClientIP(r),
		})
		if err != nil {
			respondInternal(w, err)
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			respondError(w, appErr)
			return
		}

		user := result.(*models.User)
		token, err := middleware.GenerateToken(user)
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, &AuthResponse{Token: token, User: user})
	}
}

// HandleLogin handles requests to log in a user
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.LoginMsg{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			respondInternal(w, err)
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			// Bad credentials read as 401, not 400.
			if utils.IsErrorCode(appErr, utils.ErrInvalidCredentials) {
				respondError(w, utils.NewUnauthorizedError("Invalid credentials"))
				return
			}
			respondError(w, appErr)
			return
		}

		user := result.(*models.User)
		token, err := middleware.GenerateToken(user)
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondJSON(w, http.StatusOK, &AuthResponse{Token: token, User: user})
	}
}

// HandleMe returns the user for the current session.
func (s *Server) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetSessionFromContext(r.Context())

		result, err := s.ask(s.Engine.GetUserActor(), &actors.GetUserMsg{UserID: claims.UserID})
		if err != nil {
			respondInternal(w, err)
			return
		}
		respondStoreResult(w, result)
	}
}
