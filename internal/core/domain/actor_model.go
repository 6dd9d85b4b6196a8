package domain

import "hive2mqtt/pkg/hiveapi"

type GetDevicesRequest struct {
	ActorRequestMixIn
}

type GetDevicesResponse struct {
	ActorResponseMixIn
	Devices hiveapi.DeviceMap
}

type PollDevicesRequest struct {
	ActorRequestMixIn
}

type PollDevicesResponse struct {
	ActorResponseMixIn
	Devices hiveapi.DeviceMap
}

// DevicesUpdatedEvent is published on the event stream after every
// successful poll so subscribers can refresh their device snapshot.
type DevicesUpdatedEvent struct {
	Devices hiveapi.DeviceMap
}

// SessionAuthFailed is reported by the hive actor when the vendor session
// cannot be re-established without new credentials. It is terminal.
type SessionAuthFailed struct {
	Error error
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	Switches     []GenericSwitch
	InputNumbers []GenericInputNumber
	Climates     []GenericClimate
	WaterHeaters []GenericWaterHeater
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
