package actors

import (
	"testing"

	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func newSuggestionEnv() (*testEnv, *actor.PID) {
	env := newTestEnv()
	pid := env.spawn(func() actor.Actor { return NewSuggestionActor(env.recorder, env.metrics) })
	return env, pid
}

func TestCreateSuggestionDefaultsToPending(t *testing.T) {
	env, pid := newSuggestionEnv()

	result := env.ask(t, pid, &CreateSuggestionMsg{UserID: 2, Title: "dark mode", Content: "please"})
	suggestion := result.(*models.Suggestion)
	assert.Equal(t, models.SuggestionPending, suggestion.Status)
	assert.Equal(t, suggestion.CreatedAt, suggestion.UpdatedAt)

	assert.Len(t, env.recorder.ByAction(models.ActionSuggestionCreated), 1)
}

func TestRespondSuggestion(t *testing.T) {
	env, pid := newSuggestionEnv()
	suggestion := env.ask(t, pid, &CreateSuggestionMsg{UserID: 2, Title: "emoji", Content: "more"}).(*models.Suggestion)

	result := env.ask(t, pid, &RespondSuggestionMsg{
		SuggestionID: suggestion.ID,
		AdminID:      1,
		Status:       models.SuggestionApproved,
		Response:     "shipping next week",
	})
	updated := result.(*models.Suggestion)
	assert.Equal(t, models.SuggestionApproved, updated.Status)
	assert.Equal(t, "shipping next week", updated.AdminResponse)
	assert.Equal(t, int64(1), updated.AdminID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	entries := env.recorder.ByAction(models.ActionSuggestionResponded)
	assert.Len(t, entries, 1)
	diff := decodeDiff(t, entries[0].Details)
	assert.Equal(t, string(models.SuggestionPending), diff.OldValues["status"])
	assert.Equal(t, string(models.SuggestionApproved), diff.NewValues["status"])
}

func TestRespondMissingSuggestion(t *testing.T) {
	env, pid := newSuggestionEnv()

	result := env.ask(t, pid, &RespondSuggestionMsg{SuggestionID: 9, AdminID: 1, Status: models.SuggestionRejected})
	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestListSuggestionsByUser(t *testing.T) {
	env, pid := newSuggestionEnv()
	env.ask(t, pid, &CreateSuggestionMsg{UserID: 2, Title: "a", Content: "a"})
	env.ask(t, pid, &CreateSuggestionMsg{UserID: 3, Title: "b", Content: "b"})
	env.ask(t, pid, &CreateSuggestionMsg{UserID: 2, Title: "c", Content: "c"})

	mine := env.ask(t, pid, &GetUserSuggestionsMsg{UserID: 2}).([]*models.Suggestion)
	assert.Len(t, mine, 2)

	all := env.ask(t, pid, &ListSuggestionsMsg{}).([]*models.Suggestion)
	assert.Len(t, all, 3)
}
