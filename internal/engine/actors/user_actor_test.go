package actors

import (
	"testing"

	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

func newUserEnv() (*testEnv, *actor.PID) {
	env := newTestEnv()
	pid := env.spawn(func() actor.Actor { return NewUserActor(env.recorder, env.metrics, "admin", "hunter2") })
	return env, pid
}

func TestSeededAdminIsUserOne(t *testing.T) {
	env, pid := newUserEnv()

	result := env.ask(t, pid, &GetUserMsg{UserID: 1})
	admin := result.(*models.User)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, "admin", admin.Username)
	assert.True(t, admin.IsAdmin)

	// Bootstrap state is not a request mutation: no audit entry for it.
	assert.Equal(t, 0, env.recorder.Len())
}

func TestRegisterAssignsNextIDAndAudits(t *testing.T) {
	env, pid := newUserEnv()

	result := env.ask(t, pid, &RegisterUserMsg{Username: "alice", Password: "pw", IPAddress: "10.0.0.1"})
	user := result.(*models.User)
	assert.Equal(t, int64(2), user.ID)
	assert.False(t, user.IsAdmin)
	assert.Equal(t, models.RoleNone, user.Role)

	entries := env.recorder.ByAction(models.ActionUserCreated)
	assert.Len(t, entries, 1)
	assert.Equal(t, user.ID, entries[0].TargetID)
	assert.Equal(t, "10.0.0.1", entries[0].IPAddress)
	// Passwords never reach the audit trail.
	assert.NotContains(t, entries[0].Details, "pw")
}

func TestRegisterDuplicateUsernameCaseInsensitive(t *testing.T) {
	env, pid := newUserEnv()

	env.ask(t, pid, &RegisterUserMsg{Username: "Alice", Password: "pw"})
	result := env.ask(t, pid, &RegisterUserMsg{Username: "aLiCe", Password: "pw2"})

	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrUserAlreadyExists, appErr.Code)
}

func TestLogin(t *testing.T) {
	env, pid := newUserEnv()
	env.ask(t, pid, &RegisterUserMsg{Username: "bob", Password: "secret"})

	result := env.ask(t, pid, &LoginMsg{Username: "BOB", Password: "secret"})
	user, ok := result.(*models.User)
	assert.True(t, ok)
	assert.Equal(t, "bob", user.Username)

	result = env.ask(t, pid, &LoginMsg{Username: "bob", Password: "wrong"})
	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestUpdateBioAuditDiff(t *testing.T) {
	env, pid := newUserEnv()
	created := env.ask(t, pid, &RegisterUserMsg{Username: "carol", Password: "pw"}).(*models.User)

	bio := "hello there"
	result := env.ask(t, pid, &UpdateUserMsg{UserID: created.ID, ActorID: created.ID, Bio: &bio})
	assert.Equal(t, "hello there", result.(*models.User).Bio)

	entries := env.recorder.ByAction(models.ActionUserUpdated)
	assert.Len(t, entries, 1)
	diff := decodeDiff(t, entries[0].Details)
	assert.Equal(t, "", diff.OldValues["bio"])
	assert.Equal(t, map[string]interface{}{"bio": "hello there"}, diff.NewValues)
}

func TestUpdateRole(t *testing.T) {
	env, pid := newUserEnv()
	created := env.ask(t, pid, &RegisterUserMsg{Username: "dave", Password: "pw"}).(*models.User)

	result := env.ask(t, pid, &UpdateRoleMsg{UserID: created.ID, Role: models.RoleGang, ActorID: 1})
	assert.Equal(t, models.RoleGang, result.(*models.User).Role)

	entries := env.recorder.ByAction(models.ActionRoleUpdated)
	assert.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, created.ID, entries[0].TargetID)
}

func TestDeleteUserFreesUsername(t *testing.T) {
	env, pid := newUserEnv()
	created := env.ask(t, pid, &RegisterUserMsg{Username: "eve", Password: "pw"}).(*models.User)

	result := env.ask(t, pid, &DeleteUserMsg{UserID: created.ID, ActorID: 1})
	assert.Equal(t, true, result)
	assert.Len(t, env.recorder.DeletedUsers(), 1)

	// The username can be registered again, under a fresh ID.
	again := env.ask(t, pid, &RegisterUserMsg{Username: "eve", Password: "pw"})
	user, ok := again.(*models.User)
	assert.True(t, ok)
	assert.Greater(t, user.ID, created.ID)
}

func TestDeleteMissingUserWritesNoAudit(t *testing.T) {
	env, pid := newUserEnv()

	result := env.ask(t, pid, &DeleteUserMsg{UserID: 42, ActorID: 1})
	appErr, ok := result.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
	assert.Empty(t, env.recorder.DeletedUsers())
}
