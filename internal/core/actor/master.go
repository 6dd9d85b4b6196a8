package actor

import (
	"fmt"
	"log"
	"time"

	adactor "hive2mqtt/internal/adapter/actor"
	"hive2mqtt/internal/config"
	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/metrics"
	"hive2mqtt/internal/mqtt"
	. "hive2mqtt/internal/util/actorutil"
	"hive2mqtt/pkg/hiveapi"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"go.uber.org/zap"
)

type MQTTActorProvider func() *adactor.MQTTActor

type HiveActorProvider func() *adactor.HiveActor

type MasterActor struct {
	config   config.Config
	behavior actor.Behavior
	stash    *Stash

	currentHealthCheck healthCheckResult
	eventStream        *eventstream.EventStream
	eventStreamSub     *eventstream.Subscription
	hiveActor          *actor.PID
	mqttActor          *actor.PID
	pollerActor        *actor.PID
	hiveActorProvider  HiveActorProvider
	mqttActorProvider  MQTTActorProvider
	devices            hiveapi.DeviceMap
	authFailed         bool
	metrics            *metrics.Metrics
	logger             *zap.Logger
}

type healthCheckResult struct {
	hiveActorHealthy   bool
	mqttActorHealthy   bool
	pollerActorHealthy bool
	checksReceived     int
	authFailed         bool
	respondTo          *actor.PID
}

type commandResult struct {
	command string
	err     error
}

func NewMasterActor(config config.Config, hiveActorProvider HiveActorProvider, mqttActorProvider MQTTActorProvider,
	metrics *metrics.Metrics, logger *zap.Logger) *MasterActor {
	act := &MasterActor{
		config:            config,
		behavior:          actor.NewBehavior(),
		stash:             &Stash{},
		logger:            ActorLogger(domain.ACTOR_ID_MASTER, logger),
		eventStream:       &eventstream.EventStream{},
		hiveActorProvider: hiveActorProvider,
		mqttActorProvider: mqttActorProvider,
		metrics:           metrics,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MasterActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MasterActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("master@starting started")

		state.currentHealthCheck = healthCheckResult{}
		state.currentHealthCheck.reset()

		// start Hive child
		hiveActorPID, err := state.startHiveActor(ctx)
		if err != nil {
			panic(err)
		}
		state.hiveActor = hiveActorPID

		// start MQTT child
		mqttActorPID, err := state.startMQTTActor(ctx)
		if err != nil {
			panic(err)
		}
		state.mqttActor = mqttActorPID

		// start Poller child
		pollerActorPID, err := state.startPollerActor(ctx)
		if err != nil {
			panic(err)
		}
		state.pollerActor = pollerActorPID

		// start HA Discovery
		if state.config.MQTT.HADiscoveryEnable {
			_, err := state.startHADiscoveryActor(ctx)
			if err != nil {
				panic(err)
			}
		}

		// forward update events from the poller to the MQTT child and
		// keep the command-routing snapshot fresh
		state.eventStreamSub = state.eventStream.Subscribe(func(value any) {
			switch ev := value.(type) {
			case domain.DevicesUpdatedEvent:
				ctx.Send(ctx.Self(), ev)
			case domain.SensorUpdateEvent:
				ctx.Send(state.mqttActor, domain.PublishSensorUpdateRequest{Event: ev})
			}
		})

		// resolve the device map needed to route inbound commands. The hive
		// child answers once its session is up.
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hiveActor, domain.GetDevicesRequest{}, 2*time.Minute), func(err error) any {
			return domain.GetDevicesResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingDevicesReceive)
	default:
		state.logger.Debug("master@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterActor) WaitingDevicesReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDevicesResponse:
		if msg.HasResponseError() {
			state.logger.Warn("master@waitingDevices could not resolve device map", zap.Error(msg.GetResponseError()))
		} else {
			state.devices = msg.Devices
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case domain.SessionAuthFailed:
		state.logger.Error("master@waitingDevices session auth failed, new credentials required", zap.Error(msg.Error))
		state.authFailed = true
	default:
		state.logger.Debug("master@waitingDevices stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("master@default ActorHealthRequest")
		state.currentHealthCheck.reset()
		state.currentHealthCheck.authFailed = state.authFailed
		state.currentHealthCheck.respondTo = ctx.Sender()
		// Hive Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hiveActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_HIVE,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		// Poller Actor Request
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.pollerActor, domain.ActorHealthRequest{}, 500*time.Millisecond), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_POLLER,
				Healthy: false,
			}
		})

		ctx.SetReceiveTimeout(1 * time.Second)

		state.behavior.BecomeStacked(state.HealthCheckReceive)
	case domain.SessionAuthFailed:
		state.logger.Error("master@default session auth failed, new credentials required", zap.Error(msg.Error))
		state.authFailed = true
	case domain.DevicesUpdatedEvent:
		state.logger.Debug("master@default devices updated", zap.Int("devices", msg.Devices.Count()))
		state.devices = msg.Devices
	case adactor.ParsedCommand:
		// route inbound MQTT command to the hive child
		state.logger.Debug("master@default parsedCommand", zap.Any("command", msg.Command))
		if msg.Command != nil {
			state.dispatchCommand(ctx, *msg.Command)
		}
	case commandResult:
		if msg.err != nil {
			state.logger.Error("master@default command failed", zap.String("command", msg.command), zap.Error(msg.err))
			state.metrics.CommandFailed(msg.command)
			return
		}
		state.logger.Debug("master@default command ok", zap.String("command", msg.command))
		state.metrics.CommandSent(msg.command)
		// poll right away so entity state converges
		ctx.Send(state.pollerActor, PollNow{})
	case *actor.Stopping:
		if state.eventStreamSub != nil {
			state.eventStream.Unsubscribe(state.eventStreamSub)
		}
	case *actor.Terminated:
		if msg.Who.GetId() == fmt.Sprintf("%s/%s", domain.ACTOR_ID_MASTER, domain.ACTOR_ID_HIVE) {
			state.logger.Error("master@default hive child terminated")
		}
	default:
		state.logger.Debug("master@default stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterActor) dispatchCommand(ctx actor.Context, parsed mqtt.ParsedMQTTCommand) {
	cmd, err := ParsedMQTTCommandToCommand(parsed, state.devices)
	if err != nil {
		state.logger.Warn("master@default invalid command payload", zap.Any("command", parsed), zap.Error(err))
		state.metrics.CommandFailed(parsed.Command)
		return
	}
	if cmd == nil {
		state.logger.Debug("master@default command for unknown entity", zap.Any("command", parsed))
		return
	}
	kind := parsed.Command
	future := ctx.RequestFuture(state.hiveActor, cmd, 20*time.Second)
	ctx.ReenterAfter(future, func(res any, err error) {
		if err == nil {
			if resp, ok := res.(domain.ActorResponse); ok {
				err = resp.GetResponseError()
			}
		}
		ctx.Send(ctx.Self(), commandResult{command: kind, err: err})
	})
}

func (state *MasterActor) HealthCheckReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.ReceiveTimeout:
		// if some actor does not respond to healthCheck, assume not healthy
		state.currentHealthCheck.respond(ctx)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case domain.ActorHealthResponse:
		state.logger.Debug("master@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.currentHealthCheck.checksReceived++
		if msg.Healthy {
			if msg.Id == domain.ACTOR_ID_HIVE {
				state.currentHealthCheck.hiveActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_MQTT {
				state.currentHealthCheck.mqttActorHealthy = true
			} else if msg.Id == domain.ACTOR_ID_POLLER {
				state.currentHealthCheck.pollerActorHealthy = true
			}
		}
		if state.currentHealthCheck.allReceived() {

			state.currentHealthCheck.respond(ctx)

			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
		} else {
			ctx.SetReceiveTimeout(1 * time.Second)
		}
	default:
		state.logger.Debug("master@healthcheck stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MasterActor) startHiveActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	hiveProps := actor.PropsFromProducer(func() actor.Actor {
		return state.hiveActorProvider()
	}, actor.WithSupervisor(supervisor))
	hiveActorPID, err := ctx.SpawnNamed(hiveProps, domain.ACTOR_ID_HIVE)
	if err != nil {
		return nil, err
	}

	return hiveActorPID, nil
}

func (state *MasterActor) startPollerActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	pollerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&state.config, state.hiveActor, state.eventStream, state.metrics, state.logger)
	}, actor.WithSupervisor(supervisor))
	pollerActorPID, err := ctx.SpawnNamed(pollerProps, domain.ACTOR_ID_POLLER)
	if err != nil {
		return nil, err
	}

	return pollerActorPID, nil
}

func (state *MasterActor) startHADiscoveryActor(ctx actor.Context) (*actor.PID, error) {

	decider := func(reason interface{}) actor.Directive {
		log.Printf("handling failure for child. reason: %v", reason)
		return actor.RestartDirective
	}
	supervisor := actor.NewOneForOneStrategy(1, 10*time.Second, decider)

	haDiscProps := actor.PropsFromProducer(func() actor.Actor {
		return NewHADiscoveryActor(&state.config, state.hiveActor, state.mqttActor, state.logger)
	}, actor.WithSupervisor(supervisor))
	haDiscPID, err := ctx.SpawnNamed(haDiscProps, domain.ACTOR_ID_HADISCOVERY)
	if err != nil {
		return nil, err
	}

	return haDiscPID, nil
}

func (state *MasterActor) startMQTTActor(ctx actor.Context) (*actor.PID, error) {

	supervisor := actor.NewExponentialBackoffStrategy(10*time.Second, 1*time.Second)

	mqttProps := actor.PropsFromProducer(func() actor.Actor {
		return state.mqttActorProvider()
	}, actor.WithSupervisor(supervisor))
	mqttActorPID, err := ctx.SpawnNamed(mqttProps, domain.ACTOR_ID_MQTT)
	if err != nil {
		return nil, err
	}

	return mqttActorPID, nil
}

func (state *healthCheckResult) reset() {
	state.hiveActorHealthy = false
	state.mqttActorHealthy = false
	state.pollerActorHealthy = false
	state.checksReceived = 0
	state.authFailed = false
}

func (state *healthCheckResult) allReceived() bool {
	return state.checksReceived == 3
}

func (state *healthCheckResult) allHealthy() bool {
	return state.hiveActorHealthy && state.mqttActorHealthy && state.pollerActorHealthy && !state.authFailed
}

func (state *healthCheckResult) respond(ctx actor.Context) {
	healthState := "running"
	if state.authFailed {
		healthState = "reauth_required"
	} else if !state.allHealthy() {
		healthState = "degraded"
	}
	resp := domain.ActorHealthResponse{
		Id:      domain.ACTOR_ID_MASTER,
		Healthy: state.allHealthy(),
		State:   healthState,
	}
	if state.respondTo != nil {
		ctx.Send(state.respondTo, resp)
	}
}
