package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/engine"
	"paste-swamp/internal/utils"
	"paste-swamp/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies: the actor system, the store engine,
// the audit recorder and the websocket hub.
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Hub            *websocket.Hub
	Recorder       *audit.Recorder
	Metrics        *utils.MetricsCollector
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	gatorEngine *engine.Engine,
	hub *websocket.Hub,
	recorder *audit.Recorder,
	metrics *utils.MetricsCollector,
	requestTimeout time.Duration,
) *Server {
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         gatorEngine,
		Hub:            hub,
		Recorder:       recorder,
		Metrics:        metrics,
		RequestTimeout: requestTimeout,
	}
}

// ask sends a message to a store actor and waits for its reply.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	return future.Result()
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

func respondError(w http.ResponseWriter, appErr *utils.AppError) {
	respondJSON(w, utils.AppErrorToHTTPStatus(appErr.Code), map[string]string{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// respondStoreResult translates an actor reply into an HTTP response: an
// AppError maps through the status table, anything else is a 200 payload.
func respondStoreResult(w http.ResponseWriter, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		respondError(w, appErr)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func respondInternal(w http.ResponseWriter, err error) {
	log.Printf("Internal error: %v", err)
	respondError(w, utils.NewAppError(utils.ErrInternal, "Internal server error", nil))
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		respondError(w, utils.NewInvalidInputError("Invalid request body"))
		return false
	}
	return true
}

// pathID parses the {id} segment of the request path.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, utils.NewInvalidInputError("Invalid ID"))
		return 0, false
	}
	return id, true
}
