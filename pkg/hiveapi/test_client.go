package hiveapi

import (
	"context"
	"sync"
)

// TestSession is an in-memory API implementation for tests and for running
// the bridge against canned data.
type TestSession struct {
	mu       sync.Mutex
	devices  DeviceMap
	StartErr error
	PollErr  error
	Commands []TestCommand
}

type TestCommand struct {
	ID    string
	State map[string]any
}

var _ API = (*TestSession)(nil)

func NewTestSession() *TestSession {
	heating := Device{
		HiveID:       "prod-heating-1",
		HiveType:     ProductHeating,
		HAName:       "Heating",
		DeviceID:     "dev-boiler-1",
		DeviceName:   "Boiler Module",
		ParentDevice: "dev-hub-1",
		DeviceData:   DeviceData{Model: "SLR1b", Manufacturer: "Hive", Version: "2.1"},
		State:        DeviceState{Online: true, Status: StatusOn, Mode: ModeSchedule, Temperature: f64(19.5), Target: f64(20)},
	}
	hotwater := Device{
		HiveID:       "prod-hotwater-1",
		HiveType:     ProductHotWater,
		HAName:       "Hot Water",
		DeviceID:     "dev-boiler-1",
		DeviceName:   "Boiler Module",
		ParentDevice: "dev-hub-1",
		DeviceData:   DeviceData{Model: "SLR1b", Manufacturer: "Hive", Version: "2.1"},
		State:        DeviceState{Online: true, Status: StatusOff, Mode: ModeSchedule},
	}
	return &TestSession{
		devices: DeviceMap{
			PlatformClimate:     {heating},
			PlatformWaterHeater: {hotwater},
			PlatformSensor: {
				derive(heating, TypeHeatingCurrentTemperature, ""),
				derive(heating, TypeHeatingTargetTemperature, ""),
				derive(heating, TypeHeatingMode, CategoryDiagnostic),
			},
			PlatformBinarySensor: {
				derive(heating, TypeAvailability, CategoryDiagnostic),
			},
		},
	}
}

func (s *TestSession) StartSession(context.Context) (DeviceMap, error) {
	if s.StartErr != nil {
		return nil, s.StartErr
	}
	return s.devices, nil
}

func (s *TestSession) Poll(context.Context) (DeviceMap, error) {
	if s.PollErr != nil {
		return nil, s.PollErr
	}
	return s.devices, nil
}

func (s *TestSession) Devices() DeviceMap {
	return s.devices
}

func (s *TestSession) SetTargetTemperature(_ context.Context, id string, target float64) error {
	return s.record(id, map[string]any{"target": target})
}

func (s *TestSession) SetHeatingMode(_ context.Context, id, mode string) error {
	return s.record(id, map[string]any{"mode": mode})
}

func (s *TestSession) SetHeatingBoost(_ context.Context, id string, minutes int, target float64) error {
	return s.record(id, map[string]any{"mode": ModeBoost, "boost": minutes, "target": target})
}

func (s *TestSession) SetWaterHeaterMode(_ context.Context, id, mode string) error {
	return s.record(id, map[string]any{"mode": mode})
}

func (s *TestSession) SetWaterHeaterBoost(_ context.Context, id string, minutes int) error {
	return s.record(id, map[string]any{"mode": ModeBoost, "boost": minutes})
}

func (s *TestSession) SetSwitch(_ context.Context, id string, on bool) error {
	return s.record(id, map[string]any{"status": onOffStatus(on)})
}

func (s *TestSession) SetLight(_ context.Context, id string, on bool, brightness *int) error {
	state := map[string]any{"status": onOffStatus(on)}
	if brightness != nil {
		state["brightness"] = *brightness
	}
	return s.record(id, state)
}

func (s *TestSession) Close() error {
	return nil
}

func (s *TestSession) record(id string, state map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Commands = append(s.Commands, TestCommand{ID: id, State: state})
	return nil
}

func f64(v float64) *float64 {
	return &v
}
