package audit

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"paste-swamp/internal/models"
)

// Recorder is the append-only mutation ledger. Every store actor writes one
// entry per mutation, synchronously with the state change, so the entry
// order is the order mutations were applied. Entries are never updated or
// removed.
type Recorder struct {
	mu      sync.RWMutex
	entries []*models.AuditLog
	nextID  int64
}

func NewRecorder() *Recorder {
	return &Recorder{nextID: 1}
}

// UpdateDiff is the details payload for *_UPDATED entries.
type UpdateDiff struct {
	OldValues   map[string]interface{} `json:"oldValues"`
	NewValues   map[string]interface{} `json:"newValues"`
	ChangedKeys []string               `json:"changedKeys"`
}

// Append records one mutation. It never fails: a payload that cannot be
// marshaled is logged and recorded with empty details rather than blocking
// the mutation it describes.
func (r *Recorder) Append(action string, actorID, targetID int64, targetType string, details interface{}, ip string) *models.AuditLog {
	var serialized string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			log.Printf("Audit: failed to serialize details for %s: %v", action, err)
		} else {
			serialized = string(data)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := &models.AuditLog{
		ID:         r.nextID,
		Action:     action,
		UserID:     actorID,
		TargetID:   targetID,
		TargetType: targetType,
		Details:    serialized,
		IPAddress:  ip,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.entries = append(r.entries, entry)
	return entry
}

// All returns every entry, newest first.
func (r *Recorder) All() []*models.AuditLog {
	return r.filter(func(*models.AuditLog) bool { return true })
}

// ByAction returns entries with the given action, newest first.
func (r *Recorder) ByAction(action string) []*models.AuditLog {
	return r.filter(func(e *models.AuditLog) bool { return e.Action == action })
}

// ByActor returns entries recorded for the given acting user, newest first.
func (r *Recorder) ByActor(userID int64) []*models.AuditLog {
	return r.filter(func(e *models.AuditLog) bool { return e.UserID == userID })
}

// DeletedUsers returns the USER_DELETED entries, newest first.
func (r *Recorder) DeletedUsers() []*models.AuditLog {
	return r.ByAction(models.ActionUserDeleted)
}

// DeletedPastes returns the PASTE_DELETED entries, newest first.
func (r *Recorder) DeletedPastes() []*models.AuditLog {
	return r.ByAction(models.ActionPasteDeleted)
}

// EditLogs returns user and paste update entries, newest first.
func (r *Recorder) EditLogs() []*models.AuditLog {
	return r.filter(func(e *models.AuditLog) bool {
		return e.Action == models.ActionUserUpdated || e.Action == models.ActionPasteUpdated
	})
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// filter walks entries newest first. Entries append in timestamp order, so
// reverse iteration is already a createdAt-descending sort.
func (r *Recorder) filter(keep func(*models.AuditLog) bool) []*models.AuditLog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.AuditLog, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if keep(r.entries[i]) {
			result = append(result, r.entries[i])
		}
	}
	return result
}
