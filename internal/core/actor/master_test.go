package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "hive2mqtt/internal/adapter/actor"
	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/metrics"
	"hive2mqtt/internal/util"
	"hive2mqtt/pkg/hiveapi"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func spawnMasterActor(t *testing.T, session hiveapi.API) (*actor.ActorSystem, *actor.RootContext, *actor.PID) {
	t.Helper()

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	m := metrics.NewMetrics(prometheus.NewRegistry())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterActor(cfg, func() *adactor.HiveActor {
			return adactor.NewHiveActor(session, logger)
		}, func() *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, logger)
		}, m, logger)
	})
	pid, err := context.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(2 * time.Second)

	return as, context, pid
}

func TestMasterActor(t *testing.T) {

	as, context, pid := spawnMasterActor(t, hiveapi.NewTestSession())

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")
	assert.Equal(t, "running", healthResp.State)

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorAuthFailed(t *testing.T) {

	session := hiveapi.NewTestSession()
	session.StartErr = hiveapi.ErrReauthRequired

	as, context, pid := spawnMasterActor(t, session)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)

	assert.False(t, healthResp.Healthy, "auth failure is not healthy")
	assert.Equal(t, "reauth_required", healthResp.State)

	context.Stop(pid)

	as.Shutdown()
}
