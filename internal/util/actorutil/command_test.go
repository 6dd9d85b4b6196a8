package actorutil

import (
	"context"
	"testing"

	"hive2mqtt/internal/core/domain"
	"hive2mqtt/internal/mqtt"
	"hive2mqtt/pkg/hiveapi"

	"github.com/stretchr/testify/assert"
)

func commandTestDevices(t *testing.T) hiveapi.DeviceMap {
	t.Helper()
	session := hiveapi.NewTestSession()
	devices, err := session.StartSession(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return devices
}

func TestClimateTempCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "prod_heating_1_heating",
		Command:  mqtt.COMMAND_CLIMATE_TEMP,
		Payload:  "21.5",
	}, devices)
	assert.NoError(err)

	req, ok := cmd.(domain.SetTargetTemperatureRequest)
	if assert.True(ok) {
		assert.Equal("prod-heating-1", req.ProductId)
		assert.Equal(21.5, req.Target)
	}
}

func TestClimateModeCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "prod_heating_1_heating",
		Command:  mqtt.COMMAND_CLIMATE_MODE,
		Payload:  domain.CLIMATE_MODE_AUTO,
	}, devices)
	assert.NoError(err)

	req, ok := cmd.(domain.SetHeatingModeRequest)
	if assert.True(ok) {
		assert.Equal("prod-heating-1", req.ProductId)
		assert.Equal(hiveapi.ModeSchedule, req.Mode)
	}
}

func TestWaterHeaterSelectCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "prod_hotwater_1_hotwater",
		Command:  mqtt.COMMAND_SELECT,
		Payload:  "MANUAL",
	}, devices)
	assert.NoError(err)

	req, ok := cmd.(domain.SetWaterHeaterModeRequest)
	if assert.True(ok) {
		assert.Equal("prod-hotwater-1", req.ProductId)
		assert.Equal(hiveapi.ModeManual, req.Mode)
	}
}

func TestBoostNumberCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "prod_heating_1_heating_boost_minutes",
		Command:  mqtt.COMMAND_NUMBER,
		Payload:  "90",
	}, devices)
	assert.NoError(err)

	req, ok := cmd.(domain.SetHeatingBoostRequest)
	if assert.True(ok) {
		assert.Equal("prod-heating-1", req.ProductId)
		assert.Equal(90, req.Minutes)
		assert.Equal(20.0, req.Target)
	}
}

func TestUnknownEntityCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "no_such_entity",
		Command:  mqtt.COMMAND_SWITCH,
		Payload:  mqtt.MQTT_PAYLOAD_ON,
	}, devices)
	assert.NoError(err)
	assert.Nil(cmd)
}

func TestInvalidClimateModeCommand(t *testing.T) {

	assert := assert.New(t)

	devices := commandTestDevices(t)

	_, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		DeviceId: "prod_heating_1_heating",
		Command:  mqtt.COMMAND_CLIMATE_MODE,
		Payload:  "cool",
	}, devices)
	assert.Error(err)
}
