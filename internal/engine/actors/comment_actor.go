package actors

import (
	"log"
	"time"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/models"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// Message types for CommentActor
type (
	CreateCommentMsg struct {
		ProfileUserID int64
		UserID        int64 // models.AnonymousUserID for visitors without a session
		Content       string
		IP            string
	}

	GetProfileCommentsMsg struct {
		ProfileUserID int64
	}

	DeleteCommentMsg struct {
		CommentID int64
		ActorID   int64
		IP        string
	}
)

// CommentActor owns the profile comments. Anyone may create one; only the
// admin route deletes them.
type CommentActor struct {
	commentsByID      map[int64]*models.Comment
	commentsByProfile map[int64][]int64
	nextID            int64
	recorder          *audit.Recorder
	metrics           *utils.MetricsCollector
}

func NewCommentActor(recorder *audit.Recorder, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{
		commentsByID:      make(map[int64]*models.Comment),
		commentsByProfile: make(map[int64][]int64),
		nextID:            1,
		recorder:          recorder,
		metrics:           metrics,
	}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreateCommentMsg:
		startTime := time.Now()

		comment := &models.Comment{
			ID:            a.nextID,
			ProfileUserID: msg.ProfileUserID,
			UserID:        msg.UserID,
			Content:       msg.Content,
			CreatedAt:     time.Now(),
		}
		a.nextID++
		a.commentsByID[comment.ID] = comment
		a.commentsByProfile[comment.ProfileUserID] = append(a.commentsByProfile[comment.ProfileUserID], comment.ID)

		a.recorder.Append(models.ActionCommentCreated, msg.UserID, comment.ID, models.TargetComment,
			map[string]interface{}{"newValues": snapshot(comment)}, msg.IP)

		a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
		context.Respond(comment)

	case *GetProfileCommentsMsg:
		comments := make([]*models.Comment, 0)
		// Newest first.
		ids := a.commentsByProfile[msg.ProfileUserID]
		for i := len(ids) - 1; i >= 0; i-- {
			if comment, exists := a.commentsByID[ids[i]]; exists {
				comments = append(comments, comment)
			}
		}
		context.Respond(comments)

	case *DeleteCommentMsg:
		comment, exists := a.commentsByID[msg.CommentID]
		if !exists {
			context.Respond(utils.NewNotFoundError("comment"))
			return
		}

		a.recorder.Append(models.ActionCommentDeleted, msg.ActorID, comment.ID, models.TargetComment,
			map[string]interface{}{"oldValues": snapshot(comment)}, msg.IP)

		a.commentsByProfile[comment.ProfileUserID] = removeID(a.commentsByProfile[comment.ProfileUserID], comment.ID)
		delete(a.commentsByID, comment.ID)

		log.Printf("CommentActor: comment %d deleted by user %d", msg.CommentID, msg.ActorID)
		context.Respond(true)

	case *GetCountsMsg:
		context.Respond(len(a.commentsByID))
	}
}
