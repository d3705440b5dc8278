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

// Message types for PasteActor
type (
	CreatePasteMsg struct {
		Title        string
		Content      string
		UserID       int64
		IsPrivate    bool
		IsAdminPaste bool
		ExtraDetails string
		IP           string
	}

	GetPasteMsg struct {
		PasteID int64
	}

	GetPublicPastesMsg struct{}

	GetClownPastesMsg struct{}

	SearchPastesMsg struct {
		Query string
	}

	GetUserPastesMsg struct {
		OwnerID       int64
		ViewerID      int64
		ViewerIsAdmin bool
	}

	// UpdatePasteMsg is a partial update: nil fields are left untouched.
	// The moderation flags (IsClown, IsAdminPaste, IsPinned, PinnedUntil)
	// are only ever set by the admin route.
	UpdatePasteMsg struct {
		PasteID      int64
		ActorID      int64
		IP           string
		Title        *string
		Content      *string
		IsPrivate    *bool
		ExtraDetails *string
		IsClown      *bool
		IsAdminPaste *bool
		IsPinned     *bool
		PinnedUntil  *time.Time
	}

	DeletePasteMsg struct {
		PasteID int64
		ActorID int64
		IP      string
	}
)

// PasteActor owns the paste map and every read policy over it: public
// listing with pin-aware ordering, the clown feed, title search, and the
// viewer-dependent profile listing. It performs no authorization; callers
// check that before sending mutations.
type PasteActor struct {
	pastesByID   map[int64]*models.Paste
	pastesByUser map[int64][]int64
	nextID       int64
	recorder     *audit.Recorder
	metrics      *utils.MetricsCollector
}

func NewPasteActor(recorder *audit.Recorder, metrics *utils.MetricsCollector) actor.Actor {
	return &PasteActor{
		pastesByID:   make(map[int64]*models.Paste),
		pastesByUser: make(map[int64][]int64),
		nextID:       1,
		recorder:     recorder,
		metrics:      metrics,
	}
}

func (a *PasteActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreatePasteMsg:
		startTime := time.Now()

		paste := &models.Paste{
			ID:           a.nextID,
			Title:        msg.Title,
			Content:      msg.Content,
			UserID:       msg.UserID,
			IsPrivate:    msg.IsPrivate,
			IsAdminPaste: msg.IsAdminPaste,
			ExtraDetails: msg.ExtraDetails,
			CreatedAt:    time.Now(),
		}
		a.nextID++
		a.pastesByID[paste.ID] = paste
		a.pastesByUser[paste.UserID] = append(a.pastesByUser[paste.UserID], paste.ID)

		a.recorder.Append(models.ActionPasteCreated, msg.UserID, paste.ID, models.TargetPaste,
			map[string]interface{}{"newValues": snapshot(paste)}, msg.IP)

		a.metrics.AddOperationLatency("create_paste", time.Since(startTime))
		log.Printf("PasteActor: paste %d created by user %d", paste.ID, paste.UserID)
		context.Respond(paste)

	case *GetPasteMsg:
		if paste, exists := a.pastesByID[msg.PasteID]; exists {
			context.Respond(paste)
		} else {
			context.Respond(utils.NewNotFoundError("paste"))
		}

	case *GetPublicPastesMsg:
		pastes := a.collect(func(p *models.Paste) bool { return !p.IsPrivate })
		sortPinAware(pastes, time.Now())
		context.Respond(pastes)

	case *GetClownPastesMsg:
		pastes := a.collect(func(p *models.Paste) bool { return p.IsClown })
		sortNewestFirst(pastes)
		context.Respond(pastes)

	case *SearchPastesMsg:
		query := strings.ToLower(strings.TrimSpace(msg.Query))
		if query == "" {
			context.Respond([]*models.Paste{})
			return
		}
		// Private pastes never match, not even for their owner.
		pastes := a.collect(func(p *models.Paste) bool {
			return !p.IsPrivate && strings.Contains(strings.ToLower(p.Title), query)
		})
		sortNewestFirst(pastes)
		context.Respond(pastes)

	case *GetUserPastesMsg:
		canSeePrivate := msg.ViewerIsAdmin || msg.ViewerID == msg.OwnerID
		pastes := make([]*models.Paste, 0)
		for _, id := range a.pastesByUser[msg.OwnerID] {
			paste, exists := a.pastesByID[id]
			if !exists {
				continue
			}
			if paste.IsPrivate && !canSeePrivate {
				continue
			}
			pastes = append(pastes, paste)
		}
		sortNewestFirst(pastes)
		context.Respond(pastes)

	case *UpdatePasteMsg:
		startTime := time.Now()

		paste, exists := a.pastesByID[msg.PasteID]
		if !exists {
			context.Respond(utils.NewNotFoundError("paste"))
			return
		}

		oldValues := snapshot(paste)
		newValues := make(map[string]interface{})
		if msg.Title != nil {
			paste.Title = *msg.Title
			newValues["title"] = *msg.Title
		}
		if msg.Content != nil {
			paste.Content = *msg.Content
			newValues["content"] = *msg.Content
		}
		if msg.IsPrivate != nil {
			paste.IsPrivate = *msg.IsPrivate
			newValues["isPrivate"] = *msg.IsPrivate
		}
		if msg.ExtraDetails != nil {
			paste.ExtraDetails = *msg.ExtraDetails
			newValues["extraDetails"] = *msg.ExtraDetails
		}
		if msg.IsClown != nil {
			paste.IsClown = *msg.IsClown
			newValues["isClown"] = *msg.IsClown
		}
		if msg.IsAdminPaste != nil {
			paste.IsAdminPaste = *msg.IsAdminPaste
			newValues["isAdminPaste"] = *msg.IsAdminPaste
		}
		if msg.IsPinned != nil {
			paste.IsPinned = *msg.IsPinned
			newValues["isPinned"] = *msg.IsPinned
		}
		if msg.PinnedUntil != nil {
			until := *msg.PinnedUntil
			paste.PinnedUntil = &until
			newValues["pinnedUntil"] = until
		}

		a.recorder.Append(models.ActionPasteUpdated, msg.ActorID, paste.ID, models.TargetPaste,
			diffDetails(oldValues, newValues), msg.IP)

		a.metrics.AddOperationLatency("update_paste", time.Since(startTime))
		context.Respond(paste)

	case *DeletePasteMsg:
		startTime := time.Now()

		paste, exists := a.pastesByID[msg.PasteID]
		if !exists {
			context.Respond(utils.NewNotFoundError("paste"))
			return
		}

		a.recorder.Append(models.ActionPasteDeleted, msg.ActorID, paste.ID, models.TargetPaste,
			map[string]interface{}{"oldValues": snapshot(paste)}, msg.IP)

		a.pastesByUser[paste.UserID] = removeID(a.pastesByUser[paste.UserID], paste.ID)
		delete(a.pastesByID, paste.ID)

		a.metrics.AddOperationLatency("delete_paste", time.Since(startTime))
		log.Printf("PasteActor: paste %d deleted by user %d", msg.PasteID, msg.ActorID)
		context.Respond(true)

	case *GetCountsMsg:
		context.Respond(len(a.pastesByID))
	}
}

func (a *PasteActor) collect(keep func(*models.Paste) bool) []*models.Paste {
	pastes := make([]*models.Paste, 0)
	for _, paste := range a.pastesByID {
		if keep(paste) {
			pastes = append(pastes, paste)
		}
	}
	return pastes
}

// sortPinAware puts actively pinned pastes first, then orders each bucket
// newest first. A paste whose pinnedUntil has passed stays pinned in storage
// but sorts with the unpinned ones.
func sortPinAware(pastes []*models.Paste, now time.Time) {
	sort.Slice(pastes, func(i, j int) bool {
		pi, pj := pastes[i].PinActiveAt(now), pastes[j].PinActiveAt(now)
		if pi != pj {
			return pi
		}
		if !pastes[i].CreatedAt.Equal(pastes[j].CreatedAt) {
			return pastes[i].CreatedAt.After(pastes[j].CreatedAt)
		}
		return pastes[i].ID > pastes[j].ID
	})
}

func sortNewestFirst(pastes []*models.Paste) {
	sort.Slice(pastes, func(i, j int) bool {
		if !pastes[i].CreatedAt.Equal(pastes[j].CreatedAt) {
			return pastes[i].CreatedAt.After(pastes[j].CreatedAt)
		}
		return pastes[i].ID > pastes[j].ID
	})
}

func removeID(ids []int64, id int64) []int64 {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
