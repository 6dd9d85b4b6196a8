package actorutil

import (
	"fmt"
	"strconv"
	"strings"

	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/mqtt"
	"hive2mqtt/pkg/hiveapi"
)

const boostMinutesSuffix = "_minutes"

// default boost parameters when the product reports no target of its own
const (
	defaultBoostTarget  = 22.0
	defaultBoostMinutes = 60
)

// ParsedMQTTCommandToCommand translates an inbound MQTT command into the
// actor request the hive actor understands. The entity id on the topic is
// resolved against the known device map. Returns (nil, nil) when the id does
// not belong to a controllable device.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand, devices hiveapi.DeviceMap) (domain.ActorRequest, error) {
	switch cmd.Command {
	case mqtt.COMMAND_CLIMATE_TEMP:
		dev := findByEntityId(devices, hiveapi.PlatformClimate, cmd.DeviceId)
		if dev == nil {
			return nil, nil
		}
		target, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		return domain.SetTargetTemperatureRequest{
			ProductId: dev.HiveID,
			Target:    target,
		}, nil
	case mqtt.COMMAND_CLIMATE_MODE:
		dev := findByEntityId(devices, hiveapi.PlatformClimate, cmd.DeviceId)
		if dev == nil {
			return nil, nil
		}
		mode, err := domain.HiveModeFromClimate(cmd.Payload)
		if err != nil {
			return nil, err
		}
		return domain.SetHeatingModeRequest{
			ProductId: dev.HiveID,
			Mode:      mode,
		}, nil
	case mqtt.COMMAND_SELECT:
		dev := findByEntityId(devices, hiveapi.PlatformWaterHeater, cmd.DeviceId)
		if dev == nil {
			return nil, nil
		}
		mode := strings.ToUpper(cmd.Payload)
		switch mode {
		case hiveapi.ModeSchedule, hiveapi.ModeManual, hiveapi.ModeOff:
		default:
			return nil, fmt.Errorf("unknown water heater mode %q", cmd.Payload)
		}
		return domain.SetWaterHeaterModeRequest{
			ProductId: dev.HiveID,
			Mode:      mode,
		}, nil
	case mqtt.COMMAND_SWITCH:
		if dev := findByEntityId(devices, hiveapi.PlatformSwitch, cmd.DeviceId); dev != nil {
			return domain.SetSwitchRequest{
				ProductId: dev.HiveID,
				On:        cmd.Payload == mqtt.MQTT_PAYLOAD_ON,
			}, nil
		}
		if dev := findByEntityId(devices, hiveapi.PlatformLight, cmd.DeviceId); dev != nil {
			return domain.SetLightRequest{
				ProductId: dev.HiveID,
				On:        cmd.Payload == mqtt.MQTT_PAYLOAD_ON,
			}, nil
		}
		return nil, nil
	case mqtt.COMMAND_NUMBER:
		entityId, ok := strings.CutSuffix(cmd.DeviceId, boostMinutesSuffix)
		if !ok {
			return nil, nil
		}
		dev := findBoostTarget(devices, entityId)
		if dev == nil {
			return nil, nil
		}
		minutes, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		if minutes <= 0 {
			minutes = defaultBoostMinutes
		}
		target := defaultBoostTarget
		if dev.State.Target != nil {
			target = *dev.State.Target
		}
		switch dev.HiveType {
		case hiveapi.ProductHotWater:
			return domain.SetWaterHeaterBoostRequest{
				ProductId: dev.HiveID,
				Minutes:   int(minutes),
			}, nil
		default:
			return domain.SetHeatingBoostRequest{
				ProductId: dev.HiveID,
				Minutes:   int(minutes),
				Target:    target,
			}, nil
		}
	}
	return nil, nil
}

func findByEntityId(devices hiveapi.DeviceMap, platform, entityId string) *hiveapi.Device {
	list := devices[platform]
	for i := range list {
		if domain.EntityId(list[i]) == entityId {
			return &list[i]
		}
	}
	return nil
}

// findBoostTarget resolves the product behind a boost number entity. The
// entity id is derived from the product with the boost feature type, so the
// lookup has to recompute it the same way.
func findBoostTarget(devices hiveapi.DeviceMap, entityId string) *hiveapi.Device {
	for _, platform := range []string{hiveapi.PlatformClimate, hiveapi.PlatformWaterHeater} {
		list := devices[platform]
		for i := range list {
			boost := list[i]
			switch boost.HiveType {
			case hiveapi.ProductHotWater:
				boost.HiveType = hiveapi.TypeHotwaterBoost
			default:
				boost.HiveType = hiveapi.TypeHeatingBoost
			}
			if domain.EntityId(boost) == entityId {
				return &list[i]
			}
		}
	}
	return nil
}
