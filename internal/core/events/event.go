package events

import (
	. "hive2mqtt/internal/core/domain"
	"hive2mqtt/pkg/hiveapi"
)

// DeviceMapToUpdateEvents converts a polled device map into the update
// events the MQTT adapter knows how to publish.
func DeviceMapToUpdateEvents(devices hiveapi.DeviceMap) []any {
	var events []any

	for _, dev := range devices[hiveapi.PlatformSensor] {
		if ev := SensorRecordToUpdateEvent(dev); ev != nil {
			events = append(events, ev)
		}
	}
	for _, dev := range devices[hiveapi.PlatformBinarySensor] {
		events = append(events, BinaryRecordToUpdateEvent(dev))
	}
	for _, dev := range devices[hiveapi.PlatformSwitch] {
		events = append(events, SwitchSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(dev),
			},
			Value: dev.State.Status == hiveapi.StatusOn,
		})
	}
	// lights have no dedicated platform on the MQTT side, they are
	// published as switches
	for _, dev := range devices[hiveapi.PlatformLight] {
		events = append(events, SwitchSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(dev),
			},
			Value: dev.State.Status == hiveapi.StatusOn,
		})
	}
	for _, dev := range devices[hiveapi.PlatformClimate] {
		events = append(events, ClimateRecordToUpdateEvent(dev))
	}
	for _, dev := range devices[hiveapi.PlatformWaterHeater] {
		events = append(events, WaterHeaterStateUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: EntityId(dev),
			},
			Mode: dev.State.Mode,
		})
	}

	return events
}

// SensorRecordToUpdateEvent maps one record from the sensor bucket. Numeric
// features become float events, everything else text. Returns nil when the
// backing value is missing.
func SensorRecordToUpdateEvent(dev hiveapi.Device) any {
	id := EntityId(dev)
	switch dev.HiveType {
	case hiveapi.TypeHeatingCurrentTemperature:
		if dev.State.Temperature == nil {
			return nil
		}
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  *dev.State.Temperature,
			Decimals:               1,
		}
	case hiveapi.TypeHeatingTargetTemperature:
		if dev.State.Target == nil {
			return nil
		}
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  *dev.State.Target,
			Decimals:               1,
		}
	case hiveapi.TypeBattery:
		if dev.State.Battery == nil {
			return nil
		}
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  float64(*dev.State.Battery),
			Decimals:               0,
		}
	case hiveapi.TypePower:
		if dev.State.Power == nil {
			return nil
		}
		return FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  *dev.State.Power,
			Decimals:               1,
		}
	case hiveapi.TypeHeatingBoost, hiveapi.TypeHotwaterBoost:
		value := hiveapi.StatusOff
		if dev.State.Mode == hiveapi.ModeBoost {
			value = hiveapi.StatusOn
		}
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  value,
		}
	case hiveapi.TypeHeatingState, hiveapi.TypeHotwaterState:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  dev.State.Status,
		}
	case hiveapi.TypeHeatingMode, hiveapi.TypeHotwaterMode, hiveapi.TypeMode:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  dev.State.Mode,
		}
	default:
		return TextSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{Id: id},
			Value:                  dev.State.Status,
		}
	}
}

// BinaryRecordToUpdateEvent maps one record from the binary_sensor bucket.
// Availability and connectivity track the online flag, the rest follow the
// reported status.
func BinaryRecordToUpdateEvent(dev hiveapi.Device) BinarySensorUpdateEvent {
	var value bool
	switch dev.HiveType {
	case hiveapi.TypeAvailability, hiveapi.TypeConnectivity:
		value = dev.State.Online
	default:
		value = dev.State.Status == hiveapi.StatusOn
	}
	return BinarySensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: EntityId(dev),
		},
		Value: value,
	}
}

// ClimateRecordToUpdateEvent maps a heating or TRV product to the full
// climate state.
func ClimateRecordToUpdateEvent(dev hiveapi.Device) ClimateStateUpdateEvent {
	mode := ClimateModeFromHive(dev.State.Mode, dev.State.Status)
	action := CLIMATE_ACTION_IDLE
	if mode == CLIMATE_MODE_OFF {
		action = CLIMATE_ACTION_OFF
	} else if dev.State.Status == hiveapi.StatusOn {
		action = CLIMATE_ACTION_HEATING
	}
	return ClimateStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: EntityId(dev),
		},
		CurrentTemperature: dev.State.Temperature,
		TargetTemperature:  dev.State.Target,
		Mode:               mode,
		Action:             action,
	}
}
