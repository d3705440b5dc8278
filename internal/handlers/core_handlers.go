package handlers

import (
	"fmt"
	"net/http"
	"time"

	"paste-swamp/internal/engine/actors"

	"github.com/asynkron/protoactor-go/actor"
)

// HandleHealth reports entity counts and runtime metrics.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userCount, err := s.countOf(s.Engine.GetUserActor())
		if err != nil {
			respondInternal(w, err)
			return
		}
		pasteCount, err := s.countOf(s.Engine.GetPasteActor())
		if err != nil {
			respondInternal(w, err)
			return
		}
		commentCount, err := s.countOf(s.Engine.GetCommentActor())
		if err != nil {
			respondInternal(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":           "healthy",
			"user_count":       userCount,
			"paste_count":      pasteCount,
			"comment_count":    commentCount,
			"audit_entries":    s.Recorder.Len(),
			"live_connections": s.Hub.ConnectionCount(),
			"metrics":          s.Metrics.Snapshot(),
			"server_time":      time.Now(),
		})
	}
}

func (s *Server) countOf(pid *actor.PID) (int, error) {
	result, err := s.ask(pid, &actors.GetCountsMsg{})
	if err != nil {
		return 0, err
	}
	count, ok := result.(int)
	if !ok {
		return 0, fmt.Errorf("unexpected count response %T", result)
	}
	return count, nil
}
