package mqtt

import (
	"testing"

	"hive2mqtt/internal/config"
	"hive2mqtt/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *MQTTClient {
	cfg := &config.Config{
		MQTT: config.MQTTConfig{
			Host:             "localhost",
			Port:             1883,
			BaseTopic:        "hive2mqtt",
			HADiscoveryTopic: "homeassistant",
		},
	}
	return CreateMQTTClient(cfg, OptsFromConfig(cfg), nil, nil)
}

type fakeMessage struct {
	topic   string
	payload string
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return []byte(m.payload) }
func (m fakeMessage) Ack()              {}

func TestTopics(t *testing.T) {
	client := testClient()

	assert.Equal(t, "hive2mqtt/bridge/state", client.BridgeStateTopic())
	assert.Equal(t, "hive2mqtt/sensor/abc/state", client.SensorStateTopic("abc"))
	assert.Equal(t, "hive2mqtt/climate/abc/temperature/set", client.ClimateTempCommandTopic("abc"))
	assert.Equal(t, "hive2mqtt/select/abc/set", client.SelectCommandTopic("abc"))
}

func TestParseSwitchCommand(t *testing.T) {
	client := testClient()

	cmd, err := client.ParseMQTTCommand(fakeMessage{topic: "hive2mqtt/switch/prod_plug_1_activeplug/command", payload: "on"})
	require.NoError(t, err)
	assert.Equal(t, COMMAND_SWITCH, cmd.Command)
	assert.Equal(t, "prod_plug_1_activeplug", cmd.DeviceId)
	assert.Equal(t, "on", cmd.Payload)
}

func TestParseClimateCommands(t *testing.T) {
	client := testClient()

	cmd, err := client.ParseMQTTCommand(fakeMessage{topic: "hive2mqtt/climate/prod_heating_1_heating/temperature/set", payload: "21.5"})
	require.NoError(t, err)
	assert.Equal(t, COMMAND_CLIMATE_TEMP, cmd.Command)
	assert.Equal(t, "21.5", cmd.Payload)

	cmd, err = client.ParseMQTTCommand(fakeMessage{topic: "hive2mqtt/climate/prod_heating_1_heating/mode/set", payload: "heat"})
	require.NoError(t, err)
	assert.Equal(t, COMMAND_CLIMATE_MODE, cmd.Command)

	// non-numeric temperature payload is rejected
	_, err = client.ParseMQTTCommand(fakeMessage{topic: "hive2mqtt/climate/prod_heating_1_heating/temperature/set", payload: "warm"})
	assert.Error(t, err)
}

func TestParseInvalidCommand(t *testing.T) {
	client := testClient()

	_, err := client.ParseMQTTCommand(fakeMessage{topic: "hive2mqtt/sensor/abc/state", payload: "1"})
	assert.Error(t, err)
}

func TestSensorDiscoveryMessage(t *testing.T) {
	client := testClient()

	sensor := domain.GenericSensor{
		Device:            domain.Device{Id: "dev-boiler-1", Name: "Boiler Module", Model: "SLR1b", Manufacturer: "Hive", Version: "2.1", ViaDevice: "dev-hub-1"},
		Id:                "prod_heating_1_heating_current_temperature",
		SensorType:        domain.SENSOR_TYPE_SENSOR,
		Name:              "Heating Current Temperature",
		UniqueId:          "prod-heating-1-Heating_Current_Temperature",
		UnitOfMeasurement: domain.UNIT_CELSIUS,
		StateClass:        domain.STATE_CLASS_MEASUREMENT,
		DeviceClass:       domain.DEVICE_CLASS_TEMPERATURE,
	}

	msg := GenericSensorToHADiscoveryMessage(client, sensor)
	assert.Equal(t, "hive2mqtt/sensor/prod_heating_1_heating_current_temperature/state", msg.StateTopic)
	assert.Equal(t, "hive2mqtt/bridge/state", msg.AvTopic)
	assert.Equal(t, []string{"dev-boiler-1"}, msg.Device.Id)
	assert.Equal(t, "dev-hub-1", msg.Device.ViaDevice)
	assert.Equal(t, "prod-heating-1-Heating_Current_Temperature", msg.UniqueId)

	topic := HADiscoverySensorTopic("homeassistant", sensor)
	assert.Equal(t, "homeassistant/sensor/dev-boiler-1/prod_heating_1_heating_current_temperature/config", topic)
}

func TestClimateDiscoveryMessage(t *testing.T) {
	client := testClient()

	climate := domain.GenericClimate{
		Device:   domain.Device{Id: "dev-boiler-1", Name: "Boiler Module"},
		Id:       "prod_heating_1_heating",
		Name:     "Heating",
		UniqueId: "prod-heating-1-heating",
		MinTemp:  domain.CLIMATE_MIN_TEMP,
		MaxTemp:  domain.CLIMATE_MAX_TEMP,
		TempStep: domain.CLIMATE_TEMP_STEP,
		Modes:    []string{"auto", "heat", "off"},
	}

	msg := GenericClimateToHADiscoveryMessage(client, climate)
	assert.Equal(t, "hive2mqtt/climate/prod_heating_1_heating/current_temperature", msg.CurrentTemperatureTopic)
	assert.Equal(t, "hive2mqtt/climate/prod_heating_1_heating/temperature/set", msg.TemperatureCommandTopic)
	assert.Equal(t, "hive2mqtt/climate/prod_heating_1_heating/mode/set", msg.ModeCommandTopic)
	assert.Equal(t, []string{"auto", "heat", "off"}, msg.Modes)
	assert.InDelta(t, 0.5, msg.TempStep, 0.001)
}
