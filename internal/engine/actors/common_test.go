package actors

import (
	"encoding/json"
	"testing"
	"time"

	"paste-swamp/internal/audit"
	"paste-swamp/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

type testEnv struct {
	system   *actor.ActorSystem
	recorder *audit.Recorder
	metrics  *utils.MetricsCollector
}

func newTestEnv() *testEnv {
	return &testEnv{
		system:   actor.NewActorSystem(),
		recorder: audit.NewRecorder(),
		metrics:  utils.NewMetricsCollector(),
	}
}

func (e *testEnv) spawn(producer func() actor.Actor) *actor.PID {
	return e.system.Root.Spawn(actor.PropsFromProducer(producer))
}

func (e *testEnv) ask(t *testing.T, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	future := e.system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	assert.NoError(t, err)
	return result
}

// decodeDiff unpacks the details payload of an *_UPDATED audit entry.
func decodeDiff(t *testing.T, details string) *audit.UpdateDiff {
	t.Helper()
	var diff audit.UpdateDiff
	assert.NoError(t, json.Unmarshal([]byte(details), &diff))
	return &diff
}
