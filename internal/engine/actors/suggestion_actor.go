package actors

import (
	"log"
	"sort"
	"time"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for SuggestionActor
type (
	CreateSuggestionMsg struct {
		UserID  int64
		Title   string
		Content string
		IP      string
	}

	GetUserSuggestionsMsg struct {
		UserID int64
	}

	ListSuggestionsMsg struct{}

	RespondSuggestionMsg struct {
		SuggestionID int64
		AdminID      int64
		Status       models.SuggestionStatus
		Response     string
		IP           string
	}
)

// SuggestionActor owns the feature suggestions. Suggestions are never
// deleted; the only mutation after creation is the admin response.
type SuggestionActor struct {
	suggestionsByID map[int64]*models.Suggestion
	nextID          int64
	recorder        *audit.Recorder
	metrics         *utils.MetricsCollector
}

func NewSuggestionActor(recorder *audit.Recorder, metrics *utils.MetricsCollector) actor.Actor {
	return &SuggestionActor{
		suggestionsByID: make(map[int64]*models.Suggestion),
		nextID:          1,
		recorder:        recorder,
		metrics:         metrics,
	}
}

func (a *SuggestionActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreateSuggestionMsg:
		startTime := time.Now()

		now := time.Now()
		suggestion := &models.Suggestion{
			ID:        a.nextID,
			UserID:    msg.UserID,
			Title:     msg.Title,
			Content:   msg.Content,
			Status:    models.SuggestionPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		a.nextID++
		a.suggestionsByID[suggestion.ID] = suggestion

		a.recorder.Append(models.ActionSuggestionCreated, msg.UserID, suggestion.ID, models.TargetSuggestion,
			map[string]interface{}{"newValues": snapshot(suggestion)}, msg.IP)

		a.metrics.AddOperationLatency("create_suggestion", time.Since(startTime))
		context.Respond(suggestion)

	case *GetUserSuggestionsMsg:
		suggestions := a.collect(func(s *models.Suggestion) bool { return s.UserID == msg.UserID })
		context.Respond(suggestions)

	case *ListSuggestionsMsg:
		suggestions := a.collect(func(*models.Suggestion) bool { return true })
		context.Respond(suggestions)

	case *RespondSuggestionMsg:
		suggestion, exists := a.suggestionsByID[msg.SuggestionID]
		if !exists {
			context.Respond(utils.NewNotFoundError("suggestion"))
			return
		}

		oldValues := snapshot(suggestion)
		suggestion.Status = msg.Status
		suggestion.AdminResponse = msg.Response
		suggestion.AdminID = msg.AdminID
		suggestion.UpdatedAt = time.Now()
		newValues := map[string]interface{}{
			"status":        msg.Status,
			"adminResponse": msg.Response,
			"adminId":       msg.AdminID,
		}

		a.recorder.Append(models.ActionSuggestionResponded, msg.AdminID, suggestion.ID, models.TargetSuggestion,
			diffDetails(oldValues, newValues), msg.IP)

		log.Printf("SuggestionActor: suggestion %d marked %s by admin %d", suggestion.ID, msg.Status, msg.AdminID)
		context.Respond(suggestion)

	case *GetCountsMsg:
		context.Respond(len(a.suggestionsByID))
	}
}

func (a *SuggestionActor) collect(keep func(*models.Suggestion) bool) []*models.Suggestion {
	suggestions := make([]*models.Suggestion, 0)
	for _, suggestion := range a.suggestionsByID {
		if keep(suggestion) {
			suggestions = append(suggestions, suggestion)
		}
	}
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].ID > suggestions[j].ID })
	return suggestions
}
