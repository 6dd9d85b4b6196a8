package domain

import "fmt"

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type BinarySensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type SwitchSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type InputNumberSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

// ClimateStateUpdateEvent carries the full state of a climate entity so the
// MQTT adapter can fan it out over the climate state topics.
type ClimateStateUpdateEvent struct {
	SensorUpdateEventMixIn
	CurrentTemperature *float64
	TargetTemperature  *float64
	Mode               string
	Action             string
}

// WaterHeaterStateUpdateEvent mirrors ClimateStateUpdateEvent for hot water.
type WaterHeaterStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Mode string
}
