package events

import (
	"context"
	"testing"

	"hive2mqtt/internal/core/domain"
	"hive2mqtt/pkg/hiveapi"

	"github.com/stretchr/testify/assert"
)

func testDevices(t *testing.T) hiveapi.DeviceMap {
	t.Helper()
	session := hiveapi.NewTestSession()
	devices, err := session.StartSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return devices
}

func TestDeviceMapToUpdateEvents(t *testing.T) {

	assert := assert.New(t)

	events := DeviceMapToUpdateEvents(testDevices(t))
	assert.NotEmpty(events)

	byId := map[string]any{}
	for _, ev := range events {
		byId[ev.(domain.SensorUpdateEvent).SensorId()] = ev
	}

	current, ok := byId["prod_heating_1_heating_current_temperature"].(domain.FloatSensorUpdateEvent)
	if assert.True(ok, "current temperature event") {
		assert.Equal(19.5, current.Value)
		assert.Equal(uint(1), current.Decimals)
	}

	mode, ok := byId["prod_heating_1_heating_mode"].(domain.TextSensorUpdateEvent)
	if assert.True(ok, "mode event") {
		assert.Equal(hiveapi.ModeSchedule, mode.Value)
	}

	availability, ok := byId["prod_heating_1_availability"].(domain.BinarySensorUpdateEvent)
	if assert.True(ok, "availability event") {
		assert.True(availability.Value)
	}

	climate, ok := byId["prod_heating_1_heating"].(domain.ClimateStateUpdateEvent)
	if assert.True(ok, "climate event") {
		assert.Equal(domain.CLIMATE_MODE_AUTO, climate.Mode)
		assert.Equal(domain.CLIMATE_ACTION_HEATING, climate.Action)
		if assert.NotNil(climate.TargetTemperature) {
			assert.Equal(20.0, *climate.TargetTemperature)
		}
	}

	waterHeater, ok := byId["prod_hotwater_1_hotwater"].(domain.WaterHeaterStateUpdateEvent)
	if assert.True(ok, "water heater event") {
		assert.Equal(hiveapi.ModeSchedule, waterHeater.Mode)
	}
}

func TestSensorRecordWithoutValue(t *testing.T) {
	dev := hiveapi.Device{
		HiveID:   "prod-heating-1",
		HiveType: hiveapi.TypeHeatingCurrentTemperature,
		HAName:   "Heating Current Temperature",
	}
	assert.Nil(t, SensorRecordToUpdateEvent(dev))
}
