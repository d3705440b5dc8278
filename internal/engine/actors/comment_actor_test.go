package actors

import (
	"testing"

	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func newCommentEnv() (*testEnv, *actor.PID) {
	env := newTestEnv()
	pid := env.spawn(func() actor.Actor { return NewCommentActor(env.recorder, env.metrics) })
	return env, pid
}

func TestAnonymousCommentUsesSentinel(t *testing.T) {
	env, pid := newCommentEnv()

	result := env.ask(t, pid, &CreateCommentMsg{
		ProfileUserID: 2,
		UserID:        models.AnonymousUserID,
		Content:       "drive-by hello",
	})
	comment := result.(*models.Comment)
	assert.Equal(t, int64(0), comment.UserID)

	listed := env.ask(t, pid, &GetProfileCommentsMsg{ProfileUserID: 2}).([]*models.Comment)
	assert.Len(t, listed, 1)
	assert.Equal(t, comment.ID, listed[0].ID)

	entries := env.recorder.ByAction(models.ActionCommentCreated)
	assert.Len(t, entries, 1)
	assert.Equal(t, models.AnonymousUserID, entries[0].UserID)
}

func TestProfileCommentsNewestFirst(t *testing.T) {
	env, pid := newCommentEnv()

	first := env.ask(t, pid, &CreateCommentMsg{ProfileUserID: 2, UserID: 3, Content: "first"}).(*models.Comment)
	second := env.ask(t, pid, &CreateCommentMsg{ProfileUserID: 2, UserID: 3, Content: "second"}).(*models.Comment)
	env.ask(t, pid, &CreateCommentMsg{ProfileUserID: 5, UserID: 3, Content: "other profile"})

	listed := env.ask(t, pid, &GetProfileCommentsMsg{ProfileUserID: 2}).([]*models.Comment)
	assert.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestDeleteComment(t *testing.T) {
	env, pid := newCommentEnv()

	comment := env.ask(t, pid, &CreateCommentMsg{ProfileUserID: 2, UserID: 3, Content: "bye"}).(*models.Comment)
	result := env.ask(t, pid, &DeleteCommentMsg{CommentID: comment.ID, ActorID: 1})
	assert.Equal(t, true, result)

	entries := env.recorder.ByAction(models.ActionCommentDeleted)
	assert.Len(t, entries, 1)
	diff := decodeDiff(t, entries[0].Details)
	assert.Equal(t, "bye", diff.OldValues["content"])

	listed := env.ask(t, pid, &GetProfileCommentsMsg{ProfileUserID: 2}).([]*models.Comment)
	assert.Empty(t, listed)
}

func TestDeleteMissingComment(t *testing.T) {
	env, pid := newCommentEnv()

	result := env.ask(t, pid, &DeleteCommentMsg{CommentID: 7, ActorID: 1})
	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
	assert.Equal(t, 0, env.recorder.Len())
}
