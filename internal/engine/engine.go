package engine

import (
	"paste-swamp/internal/audit"
	"paste-swamp/internal/config"
	"paste-swamp/internal/engine/actors"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Engine spawns the store actors and hands out their PIDs. All entity state
// lives inside the actors; the recorder is the shared audit ledger they all
// write to synchronously.
type Engine struct {
	userActor       *actor.PID
	pasteActor      *actor.PID
	commentActor    *actor.PID
	suggestionActor *actor.PID
	moderationActor *actor.PID
}

func NewEngine(system *actor.ActorSystem, recorder *audit.Recorder, metrics *utils.MetricsCollector, adminSeed *config.AdminSeedConfig) *Engine {
	context := system.Root

	adminUsername, adminPassword := "", ""
	if adminSeed != nil {
		adminUsername, adminPassword = adminSeed.Username, adminSeed.Password
	}

	userPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(recorder, metrics, adminUsername, adminPassword)
	}))
	pastePID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewPasteActor(recorder, metrics)
	}))
	commentPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(recorder, metrics)
	}))
	suggestionPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewSuggestionActor(recorder, metrics)
	}))
	moderationPID := context.Spawn(actor.PropsFromProducer(func() actor.Actor {
		return actors.NewModerationActor(recorder, metrics)
	}))

	return &Engine{
		userActor:       userPID,
		pasteActor:      pastePID,
		commentActor:    commentPID,
		suggestionActor: suggestionPID,
		moderationActor: moderationPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetPasteActor returns the PID of the paste actor
func (e *Engine) GetPasteActor() *actor.PID {
	return e.pasteActor
}

// GetCommentActor returns the PID of the comment actor
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}

// GetSuggestionActor returns the PID of the suggestion actor
func (e *Engine) GetSuggestionActor() *actor.PID {
	return e.suggestionActor
}

// GetModerationActor returns the PID of the moderation actor
func (e *Engine) GetModerationActor() *actor.PID {
	return e.moderationActor
}
