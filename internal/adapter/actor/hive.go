package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/util/actorutil"
	"hive2mqtt/pkg/hiveapi"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const (
	sessionStartTimeout = 30 * time.Second
	apiCallTimeout      = 15 * time.Second
)

// HiveActor owns the vendor API session. Session bootstrap failures keep
// the two-signal contract: transport errors panic so the supervisor retries
// with backoff, a re-auth requirement is terminal and reported upwards.
type HiveActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	session  hiveapi.API
	logger   *zap.Logger
}

type sessionStarted struct {
	devices hiveapi.DeviceMap
}

type sessionStartFailed struct {
	err error
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewHiveActor(session hiveapi.API, logger *zap.Logger) *HiveActor {
	act := &HiveActor{
		session:  session,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger(domain.ACTOR_ID_HIVE, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HiveActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HiveActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hive@starting started")

		self := ctx.Self()
		actorutil.NewBackgroundTask(ctx, func() (*sessionStarted, error) {
			callCtx, cancel := context.WithTimeout(context.Background(), sessionStartTimeout)
			defer cancel()
			devices, err := state.session.StartSession(callCtx)
			if err != nil {
				return nil, err
			}
			return &sessionStarted{devices: devices}, nil
		}).OnError(func(err error) {
			ctx.Send(self, sessionStartFailed{err: err})
		}).PipeTo(self)
	case sessionStarted:
		state.logger.Info("hive@starting session established", zap.Int("devices", msg.devices.Count()))
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case sessionStartFailed:
		if !hiveapi.IsRetryable(msg.err) {
			// terminal: new credentials are needed, do not let the
			// supervisor retry with the same ones
			state.logger.Error("hive@starting re-authentication required", zap.Error(msg.err))
			ctx.Send(ctx.Parent(), domain.SessionAuthFailed{Error: msg.err})
			state.behavior.Become(state.AuthFailedReceive)
			state.stash.UnstashAll(ctx)
			return
		}
		// transient: stop and let the supervisor restart with backoff
		state.logger.Error("hive@starting session bootstrap failed", zap.Error(msg.err))
		panic(msg.err)
	case *actor.Restarting:
		state.closeSession()
	default:
		state.logger.Debug("hive@starting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HiveActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("hive@default ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HIVE,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetDevicesRequest:
		state.logger.Debug("hive@default GetDevicesRequest")
		actorutil.ForRequest(msg).Respond(ctx, domain.GetDevicesResponse{
			Devices: state.session.Devices(),
		})
	case domain.PollDevicesRequest:
		state.logger.Debug("hive@default PollDevicesRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)
		state.runTask(ctx, sender, func(callCtx context.Context) (any, error) {
			devices, err := state.session.Poll(callCtx)
			if err != nil {
				return nil, err
			}
			return domain.PollDevicesResponse{Devices: devices}, nil
		}, func(err error) any {
			return domain.PollDevicesResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
			}
		})
	case domain.SetTargetTemperatureRequest:
		state.logger.Debug("hive@default SetTargetTemperatureRequest", zap.String("product", msg.ProductId), zap.Float64("target", msg.Target))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetTargetTemperature(callCtx, msg.ProductId, msg.Target)
		}, func(err error) any {
			return domain.SetTargetTemperatureResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetHeatingModeRequest:
		state.logger.Debug("hive@default SetHeatingModeRequest", zap.String("product", msg.ProductId), zap.String("mode", msg.Mode))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetHeatingMode(callCtx, msg.ProductId, msg.Mode)
		}, func(err error) any {
			return domain.SetHeatingModeResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetHeatingBoostRequest:
		state.logger.Debug("hive@default SetHeatingBoostRequest", zap.String("product", msg.ProductId), zap.Int("minutes", msg.Minutes))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetHeatingBoost(callCtx, msg.ProductId, msg.Minutes, msg.Target)
		}, func(err error) any {
			return domain.SetHeatingBoostResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetWaterHeaterModeRequest:
		state.logger.Debug("hive@default SetWaterHeaterModeRequest", zap.String("product", msg.ProductId), zap.String("mode", msg.Mode))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetWaterHeaterMode(callCtx, msg.ProductId, msg.Mode)
		}, func(err error) any {
			return domain.SetWaterHeaterModeResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetWaterHeaterBoostRequest:
		state.logger.Debug("hive@default SetWaterHeaterBoostRequest", zap.String("product", msg.ProductId), zap.Int("minutes", msg.Minutes))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetWaterHeaterBoost(callCtx, msg.ProductId, msg.Minutes)
		}, func(err error) any {
			return domain.SetWaterHeaterBoostResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetSwitchRequest:
		state.logger.Debug("hive@default SetSwitchRequest", zap.String("product", msg.ProductId), zap.Bool("on", msg.On))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetSwitch(callCtx, msg.ProductId, msg.On)
		}, func(err error) any {
			return domain.SetSwitchResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case domain.SetLightRequest:
		state.logger.Debug("hive@default SetLightRequest", zap.String("product", msg.ProductId), zap.Bool("on", msg.On))
		state.runCommand(ctx, msg, func(callCtx context.Context) error {
			return state.session.SetLight(callCtx, msg.ProductId, msg.On, msg.Brightness)
		}, func(err error) any {
			return domain.SetLightResponse{
				HiveCommandResponseMixIn: commandError(err),
			}
		})
	case *actor.Restarting:
		state.closeSession()
	case *actor.Stopping:
		state.closeSession()
	default:
		state.logger.Debug("hive@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// AuthFailedReceive keeps the actor alive but unhealthy so health checks
// surface the re-auth requirement instead of an endless crash loop.
func (state *HiveActor) AuthFailedReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_HIVE,
			Healthy: false,
			State:   "reauth_required",
		})
	case domain.GetDevicesRequest:
		actorutil.ForRequest(msg).Respond(ctx, domain.GetDevicesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: hiveapi.ErrReauthRequired},
		})
	case domain.PollDevicesRequest:
		actorutil.ForRequest(msg).Respond(ctx, domain.PollDevicesResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: hiveapi.ErrReauthRequired},
		})
	case *actor.Stopping:
		state.closeSession()
	default:
		state.logger.Debug("hive@authfailed drop", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HiveActor) WaitingAPI(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("hive@waiting backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		if msg.replyTo != nil {
			ctx.Send(msg.replyTo, msg.message)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.closeSession()
	default:
		state.logger.Debug("hive@waiting stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HiveActor) runTask(ctx actor.Context, sender *actor.PID, fn func(context.Context) (any, error), recover func(error) any) {
	task := actorutil.NewBackgroundTask(ctx, func() (*any, error) {
		callCtx, cancel := context.WithTimeout(context.Background(), apiCallTimeout)
		defer cancel()
		message, err := fn(callCtx)
		if err != nil {
			return nil, err
		}
		return &message, nil
	})
	actorutil.MapBackgroundTask(task, mapTaskResult(sender)).Recover(func(err error) backgroundTaskResult {
		return backgroundTaskResult{message: recover(err), replyTo: sender}
	}).WithTimeout(apiCallTimeout + time.Second).PipeTo(ctx.Self())
	state.behavior.BecomeStacked(state.WaitingAPI)
}

func mapTaskResult(replyTo *actor.PID) func(*any) *backgroundTaskResult {
	return func(value *any) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *value,
			replyTo: replyTo,
		}
	}
}

func (state *HiveActor) runCommand(ctx actor.Context, req domain.ActorRequest, fn func(context.Context) error, recover func(error) any) {
	sender := actorutil.ForRequest(req).ReplyTo(ctx)
	state.runTask(ctx, sender, func(callCtx context.Context) (any, error) {
		if err := fn(callCtx); err != nil {
			return nil, err
		}
		return recover(nil), nil
	}, recover)
}

func (state *HiveActor) closeSession() {
	if err := state.session.Close(); err != nil && !errors.Is(err, hiveapi.ErrNoSession) {
		state.logger.Warn("hive session close failed", zap.Error(err))
	}
}

func commandError(err error) domain.HiveCommandResponseMixIn {
	return domain.HiveCommandResponseMixIn{
		ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
	}
}
