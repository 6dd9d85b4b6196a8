package actor

import (
	"errors"
	"fmt"
	"time"

	"hive2mqtt/internal/config"
	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/util/actorutil"
	"hive2mqtt/pkg/hiveapi"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type HADiscoveryActor struct {
	config           *config.Config
	behavior         actor.Behavior
	stash            *actorutil.Stash
	hiveActor        *actor.PID
	mqttActor        *actor.PID
	hiveActorHealthy bool
	mqttActorHealthy bool
	healthyRecv      int

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, hiveActor *actor.PID, mqttActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:    config,
		hiveActor: hiveActor,
		mqttActor: mqttActor,
		behavior:  actor.NewBehavior(),
		stash:     &actorutil.Stash{},
		logger:    actorutil.ActorLogger(domain.ACTOR_ID_HADISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check Hive and MQTT actor healthy
		state.healthyRecv = 0
		state.hiveActorHealthy = false
		state.mqttActorHealthy = false
		// Hive Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hiveActor, domain.ActorHealthRequest{}, 30*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_HIVE,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 30*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_HIVE:
				state.hiveActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.hiveActorHealthy && state.mqttActorHealthy {
				// Ask Hive for the current device map
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hiveActor, domain.GetDevicesRequest{}, 5*time.Second), func(err error) any {
					return domain.GetDevicesResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingDevicesReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Hive Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}

func (state *HADiscoveryActor) WaitingDevicesReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@devices: GetDevicesResponse", zap.Int("devices", msg.Devices.Count()))

		request := state.buildDiscoveryRequest(msg.Devices)
		ctx.Send(state.mqttActor, request)
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@devices: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HADiscoveryActor) buildDiscoveryRequest(devices hiveapi.DeviceMap) domain.PublishDiscoveryRequest {
	var request domain.PublishDiscoveryRequest

	bridgeDevice := domain.BridgeDevice(state.config.MQTT.BaseTopic)
	request.Sensors = append(request.Sensors, domain.BridgeSensors(bridgeDevice)...)

	for _, dev := range devices[hiveapi.PlatformSensor] {
		sensor, err := domain.BuildSensor(dev, domain.SENSOR_TYPE_SENSOR)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping sensor", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		sensor.Device.ViaDevice = bridgeDevice.Id
		request.Sensors = append(request.Sensors, sensor)
	}
	for _, dev := range devices[hiveapi.PlatformBinarySensor] {
		sensor, err := domain.BuildSensor(dev, domain.SENSOR_TYPE_BINARY)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping binary sensor", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		sensor.Device.ViaDevice = bridgeDevice.Id
		request.Sensors = append(request.Sensors, sensor)
	}
	for _, dev := range devices[hiveapi.PlatformSwitch] {
		sw, err := domain.BuildSwitch(dev)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping switch", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		sw.Device.ViaDevice = bridgeDevice.Id
		request.Switches = append(request.Switches, sw)
	}
	// lights are published as switches
	for _, dev := range devices[hiveapi.PlatformLight] {
		sw, err := domain.BuildSwitch(dev)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping light", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		sw.Device.ViaDevice = bridgeDevice.Id
		request.Switches = append(request.Switches, sw)
	}
	for _, dev := range devices[hiveapi.PlatformClimate] {
		climate, err := domain.BuildClimate(dev)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping climate", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		climate.Device.ViaDevice = bridgeDevice.Id
		request.Climates = append(request.Climates, climate)

		boost, err := domain.BuildBoostInputNumber(dev)
		if err == nil {
			boost.Device = domain.IdDevice(climate.Device)
			request.InputNumbers = append(request.InputNumbers, boost)
		}
	}
	for _, dev := range devices[hiveapi.PlatformWaterHeater] {
		waterHeater, err := domain.BuildWaterHeater(dev)
		if err != nil {
			state.logger.Warn("hadiscovery: skipping water heater", zap.String("id", dev.HiveID), zap.Error(err))
			continue
		}
		waterHeater.Device.ViaDevice = bridgeDevice.Id
		request.WaterHeaters = append(request.WaterHeaters, waterHeater)
	}

	return request
}
