package actors

import (
	"log"
	"sort"
	"strings"
	"time"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for UserActor
type (
	RegisterUserMsg struct {
		Username  string
		Password  string
		IPAddress string
	}

	LoginMsg struct {
		Username string
		Password string
	}

	GetUserMsg struct {
		UserID int64
	}

	ListUsersMsg struct{}

	// UpdateUserMsg is a partial update: nil fields are left untouched.
	UpdateUserMsg struct {
		UserID    int64
		ActorID   int64
		IP        string
		Bio       *string
		AvatarURL *string
		IsAdmin   *bool
	}

	UpdateRoleMsg struct {
		UserID  int64
		Role    models.Role
		ActorID int64
		IP      string
	}

	DeleteUserMsg struct {
		UserID  int64
		ActorID int64
		IP      string
	}
)

// UserActor owns the user map. Usernames are unique case-insensitively;
// the lowercased index enforces that. Deleting a user does not touch their
// pastes or comments, so those keep a dangling userId on purpose.
type UserActor struct {
	usersByID map[int64]*models.User
	idByName  map[string]int64
	nextID    int64
	recorder  *audit.Recorder
	metrics   *utils.MetricsCollector
}

// NewUserActor creates the actor and, when seed credentials are given,
// creates the administrator account as user ID 1 before any message is
// processed. The seed is bootstrap state, not a request mutation, so it is
// not audited.
func NewUserActor(recorder *audit.Recorder, metrics *utils.MetricsCollector, adminUsername, adminPassword string) actor.Actor {
	a := &UserActor{
		usersByID: make(map[int64]*models.User),
		idByName:  make(map[string]int64),
		nextID:    1,
		recorder:  recorder,
		metrics:   metrics,
	}
	if adminUsername != "" {
		admin := &models.User{
			ID:        a.nextID,
			Username:  adminUsername,
			Password:  adminPassword,
			IsAdmin:   true,
			Role:      models.RoleNone,
			CreatedAt: time.Now(),
		}
		a.usersByID[admin.ID] = admin
		a.idByName[strings.ToLower(admin.Username)] = admin.ID
		a.nextID++
	}
	return a
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		startTime := time.Now()

		key := strings.ToLower(msg.Username)
		if _, exists := a.idByName[key]; exists {
			context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Username already taken", nil))
			return
		}

		user := &models.User{
			ID:        a.nextID,
			Username:  msg.Username,
			Password:  msg.Password,
			IPAddress: msg.IPAddress,
			Role:      models.RoleNone,
			CreatedAt: time.Now(),
		}
		a.nextID++
		a.usersByID[user.ID] = user
		a.idByName[key] = user.ID

		a.recorder.Append(models.ActionUserCreated, user.ID, user.ID, models.TargetUser,
			map[string]interface{}{"newValues": snapshot(user)}, msg.IPAddress)

		a.metrics.AddOperationLatency("register_user", time.Since(startTime))
		log.Printf("UserActor: registered user %d (%s)", user.ID, user.Username)
		context.Respond(user)

	case *LoginMsg:
		id, exists := a.idByName[strings.ToLower(msg.Username)]
		if !exists {
			context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
			return
		}
		user := a.usersByID[id]
		if user.Password != msg.Password {
			context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
			return
		}
		context.Respond(user)

	case *GetUserMsg:
		if user, exists := a.usersByID[msg.UserID]; exists {
			context.Respond(user)
		} else {
			context.Respond(utils.NewNotFoundError("user"))
		}

	case *ListUsersMsg:
		users := make([]*models.User, 0, len(a.usersByID))
		for _, user := range a.usersByID {
			users = append(users, user)
		}
		sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
		context.Respond(users)

	case *UpdateUserMsg:
		startTime := time.Now()

		user, exists := a.usersByID[msg.UserID]
		if !exists {
			context.Respond(utils.NewNotFoundError("user"))
			return
		}

		oldValues := snapshot(user)
		newValues := make(map[string]interface{})
		if msg.Bio != nil {
			user.Bio = *msg.Bio
			newValues["bio"] = *msg.Bio
		}
		if msg.AvatarURL != nil {
			user.AvatarURL = *msg.AvatarURL
			newValues["avatarUrl"] = *msg.AvatarURL
		}
		if msg.IsAdmin != nil {
			user.IsAdmin = *msg.IsAdmin
			newValues["isAdmin"] = *msg.IsAdmin
		}

		a.recorder.Append(models.ActionUserUpdated, msg.ActorID, user.ID, models.TargetUser,
			diffDetails(oldValues, newValues), msg.IP)

		a.metrics.AddOperationLatency("update_user", time.Since(startTime))
		context.Respond(user)

	case *UpdateRoleMsg:
		user, exists := a.usersByID[msg.UserID]
		if !exists {
			context.Respond(utils.NewNotFoundError("user"))
			return
		}

		oldValues := snapshot(user)
		user.Role = msg.Role
		newValues := map[string]interface{}{"role": msg.Role}

		a.recorder.Append(models.ActionRoleUpdated, msg.ActorID, user.ID, models.TargetUser,
			diffDetails(oldValues, newValues), msg.IP)

		log.Printf("UserActor: role of user %d set to %q by %d", user.ID, msg.Role, msg.ActorID)
		context.Respond(user)

	case *DeleteUserMsg:
		startTime := time.Now()

		user, exists := a.usersByID[msg.UserID]
		if !exists {
			context.Respond(utils.NewNotFoundError("user"))
			return
		}

		a.recorder.Append(models.ActionUserDeleted, msg.ActorID, user.ID, models.TargetUser,
			map[string]interface{}{"oldValues": snapshot(user)}, msg.IP)

		delete(a.idByName, strings.ToLower(user.Username))
		delete(a.usersByID, user.ID)

		a.metrics.AddOperationLatency("delete_user", time.Since(startTime))
		log.Printf("UserActor: user %d deleted by %d", msg.UserID, msg.ActorID)
		context.Respond(true)

	case *GetCountsMsg:
		context.Respond(len(a.usersByID))
	}
}

// diffDetails builds the audit payload for an update: the full pre-update
// snapshot, exactly the submitted partial, and the touched keys.
func diffDetails(oldValues, newValues map[string]interface{}) *audit.UpdateDiff {
	changed := make([]string, 0, len(newValues))
	for key := range newValues {
		changed = append(changed, key)
	}
	sort.Strings(changed)
	return &audit.UpdateDiff{
		OldValues:   oldValues,
		NewValues:   newValues,
		ChangedKeys: changed,
	}
}
