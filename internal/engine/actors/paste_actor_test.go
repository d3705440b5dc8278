package actors

import (
	"testing"
	"time"

	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func newPasteEnv() (*testEnv, *actor.PID) {
	env := newTestEnv()
	pid := env.spawn(func() actor.Actor { return NewPasteActor(env.recorder, env.metrics) })
	return env, pid
}

func (e *testEnv) createPaste(t *testing.T, pid *actor.PID, msg *CreatePasteMsg) *models.Paste {
	t.Helper()
	result := e.ask(t, pid, msg)
	paste, ok := result.(*models.Paste)
	assert.True(t, ok, "expected a paste, got %T", result)
	return paste
}

func TestCreatePasteWritesAuditEntry(t *testing.T) {
	env, pid := newPasteEnv()

	paste := env.createPaste(t, pid, &CreatePasteMsg{Title: "hello", Content: "world", UserID: 2})
	assert.Equal(t, int64(1), paste.ID)
	assert.False(t, paste.IsPrivate)
	assert.False(t, paste.IsClown)

	entries := env.recorder.ByAction(models.ActionPasteCreated)
	assert.Len(t, entries, 1)
	assert.Equal(t, paste.ID, entries[0].TargetID)
	assert.Equal(t, models.TargetPaste, entries[0].TargetType)
	assert.Equal(t, int64(2), entries[0].UserID)
}

func TestPasteIDsAreMonotonic(t *testing.T) {
	env, pid := newPasteEnv()

	first := env.createPaste(t, pid, &CreatePasteMsg{Title: "a", Content: "x", UserID: 2})
	second := env.createPaste(t, pid, &CreatePasteMsg{Title: "b", Content: "y", UserID: 2})
	env.ask(t, pid, &DeletePasteMsg{PasteID: second.ID, ActorID: 2})
	third := env.createPaste(t, pid, &CreatePasteMsg{Title: "c", Content: "z", UserID: 2})

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	// Deleted IDs are never reused.
	assert.Equal(t, int64(3), third.ID)
}

func TestUpdatePasteAuditDiff(t *testing.T) {
	env, pid := newPasteEnv()

	paste := env.createPaste(t, pid, &CreatePasteMsg{Title: "original", Content: "body", UserID: 2})

	newTitle := "renamed"
	result := env.ask(t, pid, &UpdatePasteMsg{PasteID: paste.ID, ActorID: 2, Title: &newTitle})
	updated := result.(*models.Paste)
	assert.Equal(t, "renamed", updated.Title)

	entries := env.recorder.ByAction(models.ActionPasteUpdated)
	assert.Len(t, entries, 1)
	diff := decodeDiff(t, entries[0].Details)
	// oldValues is the full pre-update snapshot.
	assert.Equal(t, "original", diff.OldValues["title"])
	assert.Equal(t, "body", diff.OldValues["content"])
	// newValues is exactly the submitted partial.
	assert.Equal(t, map[string]interface{}{"title": "renamed"}, diff.NewValues)
	assert.Equal(t, []string{"title"}, diff.ChangedKeys)
}

func TestDeleteMissingPasteWritesNoAudit(t *testing.T) {
	env, pid := newPasteEnv()

	result := env.ask(t, pid, &DeletePasteMsg{PasteID: 99, ActorID: 1})
	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
	assert.Empty(t, env.recorder.DeletedPastes())
}

func TestDeletePasteSnapshotsEntity(t *testing.T) {
	env, pid := newPasteEnv()

	paste := env.createPaste(t, pid, &CreatePasteMsg{Title: "doomed", Content: "gone", UserID: 2})
	result := env.ask(t, pid, &DeletePasteMsg{PasteID: paste.ID, ActorID: 1})
	assert.Equal(t, true, result)

	entries := env.recorder.DeletedPastes()
	assert.Len(t, entries, 1)
	diff := decodeDiff(t, entries[0].Details)
	assert.Equal(t, "doomed", diff.OldValues["title"])

	lookup := env.ask(t, pid, &GetPasteMsg{PasteID: paste.ID})
	_, isErr := lookup.(*utils.AppError)
	assert.True(t, isErr)
}

func TestSearchBlankQueryReturnsEmpty(t *testing.T) {
	env, pid := newPasteEnv()
	env.createPaste(t, pid, &CreatePasteMsg{Title: "anything", Content: "c", UserID: 2})

	for _, query := range []string{"", " ", "\t  "} {
		result := env.ask(t, pid, &SearchPastesMsg{Query: query})
		assert.Empty(t, result.([]*models.Paste), "query %q", query)
	}
}

func TestSearchExcludesPrivateEvenForOwner(t *testing.T) {
	env, pid := newPasteEnv()
	env.createPaste(t, pid, &CreatePasteMsg{Title: "secret plans", Content: "c", UserID: 2, IsPrivate: true})
	public := env.createPaste(t, pid, &CreatePasteMsg{Title: "public plans", Content: "c", UserID: 2})

	// Search carries no viewer identity at all: private pastes never match.
	result := env.ask(t, pid, &SearchPastesMsg{Query: "plans"})
	matches := result.([]*models.Paste)
	assert.Len(t, matches, 1)
	assert.Equal(t, public.ID, matches[0].ID)

	result = env.ask(t, pid, &SearchPastesMsg{Query: "SECRET"})
	assert.Empty(t, result.([]*models.Paste))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	env, pid := newPasteEnv()
	paste := env.createPaste(t, pid, &CreatePasteMsg{Title: "Hello World", Content: "c", UserID: 2})

	result := env.ask(t, pid, &SearchPastesMsg{Query: "hELLo"})
	matches := result.([]*models.Paste)
	assert.Len(t, matches, 1)
	assert.Equal(t, paste.ID, matches[0].ID)
}

func TestPublicPastesExcludePrivate(t *testing.T) {
	env, pid := newPasteEnv()
	env.createPaste(t, pid, &CreatePasteMsg{Title: "hidden", Content: "c", UserID: 2, IsPrivate: true})
	public := env.createPaste(t, pid, &CreatePasteMsg{Title: "shown", Content: "c", UserID: 2})

	result := env.ask(t, pid, &GetPublicPastesMsg{})
	pastes := result.([]*models.Paste)
	assert.Len(t, pastes, 1)
	assert.Equal(t, public.ID, pastes[0].ID)
}

func TestActivePinSortsFirst(t *testing.T) {
	env, pid := newPasteEnv()

	older := env.createPaste(t, pid, &CreatePasteMsg{Title: "older", Content: "c", UserID: 2})
	env.createPaste(t, pid, &CreatePasteMsg{Title: "newer", Content: "c", UserID: 2})

	pinned := true
	until := time.Now().Add(time.Hour)
	env.ask(t, pid, &UpdatePasteMsg{PasteID: older.ID, ActorID: 1, IsPinned: &pinned, PinnedUntil: &until})

	result := env.ask(t, pid, &GetPublicPastesMsg{})
	pastes := result.([]*models.Paste)
	assert.Len(t, pastes, 2)
	// The pinned paste leads despite being created first.
	assert.Equal(t, older.ID, pastes[0].ID)
}

func TestExpiredPinSortsWithUnpinned(t *testing.T) {
	env, pid := newPasteEnv()

	older := env.createPaste(t, pid, &CreatePasteMsg{Title: "older", Content: "c", UserID: 2})
	newer := env.createPaste(t, pid, &CreatePasteMsg{Title: "newer", Content: "c", UserID: 2})

	pinned := true
	until := time.Now().Add(-time.Hour)
	env.ask(t, pid, &UpdatePasteMsg{PasteID: older.ID, ActorID: 1, IsPinned: &pinned, PinnedUntil: &until})

	result := env.ask(t, pid, &GetPublicPastesMsg{})
	pastes := result.([]*models.Paste)
	assert.Len(t, pastes, 2)
	// Pin expired: straight newest-first ordering applies, but the flag
	// itself stays set in storage.
	assert.Equal(t, newer.ID, pastes[0].ID)
	assert.True(t, pastes[1].IsPinned)
}

func TestClownFeedIgnoresPrivacy(t *testing.T) {
	env, pid := newPasteEnv()

	private := env.createPaste(t, pid, &CreatePasteMsg{Title: "private clown", Content: "c", UserID: 2, IsPrivate: true})
	env.createPaste(t, pid, &CreatePasteMsg{Title: "normal", Content: "c", UserID: 2})

	clown := true
	env.ask(t, pid, &UpdatePasteMsg{PasteID: private.ID, ActorID: 1, IsClown: &clown})

	result := env.ask(t, pid, &GetClownPastesMsg{})
	pastes := result.([]*models.Paste)
	assert.Len(t, pastes, 1)
	assert.Equal(t, private.ID, pastes[0].ID)
}

func TestUserPastesViewerFilter(t *testing.T) {
	env, pid := newPasteEnv()

	env.createPaste(t, pid, &CreatePasteMsg{Title: "public", Content: "c", UserID: 2})
	env.createPaste(t, pid, &CreatePasteMsg{Title: "private", Content: "c", UserID: 2, IsPrivate: true})

	// Anonymous viewer sees only the public paste.
	result := env.ask(t, pid, &GetUserPastesMsg{OwnerID: 2})
	assert.Len(t, result.([]*models.Paste), 1)

	// The owner sees both.
	result = env.ask(t, pid, &GetUserPastesMsg{OwnerID: 2, ViewerID: 2})
	assert.Len(t, result.([]*models.Paste), 2)

	// So does an admin.
	result = env.ask(t, pid, &GetUserPastesMsg{OwnerID: 2, ViewerID: 1, ViewerIsAdmin: true})
	assert.Len(t, result.([]*models.Paste), 2)

	// Another regular user does not.
	result = env.ask(t, pid, &GetUserPastesMsg{OwnerID: 2, ViewerID: 3})
	assert.Len(t, result.([]*models.Paste), 1)
}
