package domain

import "fmt"

// HiveCommandRequest

type HiveCommandRequest interface {
	ActorRequest
	HiveCommand() string
}

type HiveCommandRequestMixIn struct {
	ActorRequestMixIn
}

func (r HiveCommandRequestMixIn) HiveCommand() string {
	return fmt.Sprintf("%T", r)
}

// HiveCommandResponse

type HiveCommandResponse interface {
	ActorResponse
	HiveCommandResponse() string
}

type HiveCommandResponseMixIn struct {
	ActorResponseMixIn
}

func (r HiveCommandResponseMixIn) HiveCommandResponse() string {
	return fmt.Sprintf("%T", r)
}

// Hive commands. ProductId is always the vendor product id, not the
// derived entity id.

type SetTargetTemperatureRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	Target    float64
}

type SetTargetTemperatureResponse struct {
	HiveCommandResponseMixIn
}

type SetHeatingModeRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	Mode      string
}

type SetHeatingModeResponse struct {
	HiveCommandResponseMixIn
}

type SetHeatingBoostRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	Minutes   int
	Target    float64
}

type SetHeatingBoostResponse struct {
	HiveCommandResponseMixIn
}

type SetWaterHeaterModeRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	Mode      string
}

type SetWaterHeaterModeResponse struct {
	HiveCommandResponseMixIn
}

type SetWaterHeaterBoostRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	Minutes   int
}

type SetWaterHeaterBoostResponse struct {
	HiveCommandResponseMixIn
}

type SetSwitchRequest struct {
	HiveCommandRequestMixIn
	ProductId string
	On        bool
}

type SetSwitchResponse struct {
	HiveCommandResponseMixIn
}

type SetLightRequest struct {
	HiveCommandRequestMixIn
	ProductId  string
	On         bool
	Brightness *int
}

type SetLightResponse struct {
	HiveCommandResponseMixIn
}

// ensure interface compliance
var _ HiveCommandRequest = (*SetTargetTemperatureRequest)(nil)
var _ HiveCommandRequest = (*SetSwitchRequest)(nil)
