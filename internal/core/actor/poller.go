package actor

import (
	"fmt"
	"time"

	"hive2mqtt/internal/config"
	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/core/events"
	"hive2mqtt/internal/metrics"
	. "hive2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	hiveActor   *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream
	metrics     *metrics.Metrics

	logger *zap.Logger
}

type pollTick struct {
}

// PollNow asks for an immediate poll without touching the schedule. The
// master sends it after a successful command so state converges fast.
type PollNow struct {
}

func NewPollerActor(config *config.Config, hiveActor *actor.PID, eventStream *eventstream.EventStream,
	metrics *metrics.Metrics, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:      config,
		hiveActor:   hiveActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream: eventStream,
		metrics:     metrics,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started")

		if state.config.Hive.ScanIntervalSeconds > 0 {
			state.scheduler = scheduler.NewTimerScheduler(ctx)
		}
		// publish the initial state without waiting a full interval
		ctx.Send(ctx.Self(), pollTick{})

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   "idle",
		})
	case pollTick:
		state.logger.Debug("poller@default tick")
		state.requestPoll(ctx)

		// schedule next tick
		if state.scheduler != nil {
			state.scheduler.RequestOnce(time.Duration(state.config.Hive.ScanIntervalSeconds)*time.Second, ctx.Self(), pollTick{})
		}
		state.behavior.BecomeStacked(state.WaitingPollReceive)
	case PollNow:
		state.logger.Debug("poller@default pollNow")
		state.requestPoll(ctx)
		state.behavior.BecomeStacked(state.WaitingPollReceive)
	default:
		state.logger.Debug("poller@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) requestPoll(ctx actor.Context) {
	state.metrics.PollStarted()
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.hiveActor, domain.PollDevicesRequest{}, 20*time.Second), func(err error) any {
		return domain.PollDevicesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
}

func (state *PollerActor) WaitingPollReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.PollDevicesResponse:
		if msg.HasResponseError() {
			state.logger.Error("poller@waiting PollDevicesResponse error", zap.Error(msg.GetResponseError()))
			state.metrics.PollFailed()
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("poller@waiting PollDevicesResponse", zap.Int("devices", msg.Devices.Count()))
		state.metrics.PollSucceeded(msg.Devices.Count())

		state.eventStream.Publish(domain.DevicesUpdatedEvent{Devices: msg.Devices})
		evs := events.DeviceMapToUpdateEvents(msg.Devices)
		for _, ev := range evs {
			state.eventStream.Publish(ev)
		}

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}
