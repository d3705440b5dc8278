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

// Message types for ModerationActor
type (
	RestrictIPMsg struct {
		IP      string
		Reason  string
		ActorID int64
		ActorIP string
	}

	UnrestrictIPMsg struct {
		IP      string
		ActorID int64
		ActorIP string
	}

	ListRestrictedIPsMsg struct{}

	CheckIPMsg struct {
		IP string
	}
)

// ModerationActor owns the restricted-IP set. Presence of an address in the
// map is the block.
type ModerationActor struct {
	restrictedIPs map[string]*models.RestrictedIP
	recorder      *audit.Recorder
	metrics       *utils.MetricsCollector
}

func NewModerationActor(recorder *audit.Recorder, metrics *utils.MetricsCollector) actor.Actor {
	return &ModerationActor{
		restrictedIPs: make(map[string]*models.RestrictedIP),
		recorder:      recorder,
		metrics:       metrics,
	}
}

func (a *ModerationActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RestrictIPMsg:
		if _, exists := a.restrictedIPs[msg.IP]; exists {
			context.Respond(utils.NewAppError(utils.ErrDuplicate, "IP already restricted", nil))
			return
		}

		restriction := &models.RestrictedIP{
			IP:           msg.IP,
			Reason:       msg.Reason,
			RestrictedBy: msg.ActorID,
			RestrictedAt: time.Now(),
		}
		a.restrictedIPs[msg.IP] = restriction

		a.recorder.Append(models.ActionIPRestricted, msg.ActorID, 0, models.TargetIP,
			map[string]interface{}{"newValues": snapshot(restriction)}, msg.ActorIP)

		log.Printf("ModerationActor: IP %s restricted by user %d", msg.IP, msg.ActorID)
		context.Respond(restriction)

	case *UnrestrictIPMsg:
		restriction, exists := a.restrictedIPs[msg.IP]
		if !exists {
			context.Respond(utils.NewNotFoundError("IP restriction"))
			return
		}

		a.recorder.Append(models.ActionIPUnrestricted, msg.ActorID, 0, models.TargetIP,
			map[string]interface{}{"oldValues": snapshot(restriction)}, msg.ActorIP)

		delete(a.restrictedIPs, msg.IP)
		log.Printf("ModerationActor: IP %s unrestricted by user %d", msg.IP, msg.ActorID)
		context.Respond(true)

	case *ListRestrictedIPsMsg:
		restrictions := make([]*models.RestrictedIP, 0, len(a.restrictedIPs))
		for _, restriction := range a.restrictedIPs {
			restrictions = append(restrictions, restriction)
		}
		sort.Slice(restrictions, func(i, j int) bool {
			return restrictions[i].RestrictedAt.After(restrictions[j].RestrictedAt)
		})
		context.Respond(restrictions)

	case *CheckIPMsg:
		_, restricted := a.restrictedIPs[msg.IP]
		context.Respond(restricted)

	case *GetCountsMsg:
		context.Respond(len(a.restrictedIPs))
	}
}
