package actor

import (
	"testing"
	"time"

	adactor "hive2mqtt/internal/adapter/actor"
	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/metrics"
	"hive2mqtt/internal/util"
	"hive2mqtt/pkg/hiveapi"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPollerPublishesDeviceUpdates(t *testing.T) {

	session := hiveapi.NewTestSession()
	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	as := actor.NewActorSystem()
	context := as.Root

	hiveProps := actor.PropsFromProducer(func() actor.Actor { return adactor.NewHiveActor(session, logger) })
	hivePID := context.Spawn(hiveProps)

	es := &eventstream.EventStream{}
	devicesUpdated := make(chan domain.DevicesUpdatedEvent, 1)
	sensorEvents := make(chan domain.SensorUpdateEvent, 64)
	sub := es.Subscribe(func(value any) {
		switch ev := value.(type) {
		case domain.DevicesUpdatedEvent:
			select {
			case devicesUpdated <- ev:
			default:
			}
		case domain.SensorUpdateEvent:
			select {
			case sensorEvents <- ev:
			default:
			}
		}
	})
	defer es.Unsubscribe(sub)

	m := metrics.NewMetrics(prometheus.NewRegistry())
	pollerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, hivePID, es, m, logger)
	})
	pollerPID := context.Spawn(pollerProps)

	// the initial tick publishes a full snapshot alongside the per-entity
	// updates
	select {
	case ev := <-devicesUpdated:
		assert.True(t, ev.Devices.Count() > 0, "snapshot carried with the update")
		assert.NotEmpty(t, ev.Devices[hiveapi.PlatformClimate])
	case <-time.After(5 * time.Second):
		t.Error("no device snapshot published")
	}

	select {
	case ev := <-sensorEvents:
		assert.NotEmpty(t, ev.SensorId())
	case <-time.After(5 * time.Second):
		t.Error("no sensor update published")
	}

	context.Stop(pollerPID)
	context.Stop(hivePID)
	as.Shutdown()
}
