package mqtt

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"hive2mqtt/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	MQTT_PAYLOAD_ONLINE  = "online"
	MQTT_PAYLOAD_OFFLINE = "offline"
	MQTT_PAYLOAD_ON      = "on"
	MQTT_PAYLOAD_OFF     = "off"
)

// Command kinds produced by ParseMQTTCommand.
const (
	COMMAND_SWITCH       = "switch"
	COMMAND_NUMBER       = "number"
	COMMAND_SELECT       = "select"
	COMMAND_CLIMATE_TEMP = "climate_temp"
	COMMAND_CLIMATE_MODE = "climate_mode"
)

func OptsFromConfig(cfg *config.Config) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	opts.SetClientID(fmt.Sprintf("hive2mqtt_%d", rand.IntN(1000)))
	if cfg.MQTT.Username != "" && cfg.MQTT.Password != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.WillEnabled = true
	opts.WillPayload = []byte(MQTT_PAYLOAD_OFFLINE)
	opts.WillRetained = true
	opts.WillTopic = bridgeStateTopic(cfg.MQTT.BaseTopic)
	opts.WillQos = 0

	return opts
}

func CreateMQTTClient(cfg *config.Config, opts *mqtt.ClientOptions, onConnectHandler func(client mqtt.Client),
	onConnectionLostHandler func(mqtt.Client, error)) *MQTTClient {
	if onConnectHandler != nil {
		opts.OnConnect = onConnectHandler
	}
	if onConnectionLostHandler != nil {
		opts.OnConnectionLost = onConnectionLostHandler
	}
	return &MQTTClient{
		client:            mqtt.NewClient(opts),
		cfg:               cfg.MQTT,
		commandExtractors: commandExtractors(cfg.MQTT.BaseTopic),
	}
}

type MQTTClient struct {
	client            mqtt.Client
	cfg               config.MQTTConfig
	commandExtractors []commandExtractor
}

type commandExtractor struct {
	command string
	regexp  *regexp.Regexp
	numeric bool
}

type ParsedMQTTCommand struct {
	DeviceId string
	Command  string
	Payload  string
}

func (c *MQTTClient) baseTopic() string {
	return c.cfg.BaseTopic
}

func (c *MQTTClient) BridgeStateTopic() string {
	return bridgeStateTopic(c.baseTopic())
}

func (c *MQTTClient) SensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) BinarySensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/binary_sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) SwitchStateTopic(switchId string) string {
	return fmt.Sprintf("%s/switch/%s/state", c.baseTopic(), switchId)
}

func (c *MQTTClient) SwitchCommandTopic(switchId string) string {
	return fmt.Sprintf("%s/switch/%s/command", c.baseTopic(), switchId)
}

func (c *MQTTClient) InputNumberStateTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) InputNumberCommandTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/set", c.baseTopic(), id)
}

func (c *MQTTClient) SelectStateTopic(id string) string {
	return fmt.Sprintf("%s/select/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) SelectCommandTopic(id string) string {
	return fmt.Sprintf("%s/select/%s/set", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateCurrentTempTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/current_temperature", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateTempStateTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/temperature", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateTempCommandTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/temperature/set", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateModeStateTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/mode", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateModeCommandTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/mode/set", c.baseTopic(), id)
}

func (c *MQTTClient) ClimateActionTopic(id string) string {
	return fmt.Sprintf("%s/climate/%s/action", c.baseTopic(), id)
}

func (c *MQTTClient) ParseMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	topic := msg.Topic()
	for _, ex := range c.commandExtractors {
		matches := ex.regexp.FindAllStringSubmatch(topic, 1)
		if len(matches) == 0 || len(matches[0]) != 2 {
			continue
		}
		payload := string(msg.Payload())
		if ex.numeric {
			if _, err := strconv.ParseFloat(payload, 64); err != nil {
				return nil, err
			}
		}
		return &ParsedMQTTCommand{
			DeviceId: matches[0][1],
			Command:  ex.command,
			Payload:  payload,
		}, nil
	}
	return nil, errors.New("invalid command")
}

func (c *MQTTClient) Publish(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration) {
	token := c.client.Publish(topic, qos, retain, payload)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT publish timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Subscribe(topic string, qos byte, handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	token := c.client.Subscribe(topic, qos, handler)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT subscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) SubscribeToCommandTopic(handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	c.Subscribe(c.commandTopic(), 1, handler, continuation, timeout)
}

func (c *MQTTClient) Unsubscribe(topic string, continuation func(error), timeout time.Duration) {
	token := c.client.Unsubscribe(topic)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT unsubscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Connect(continuation func(error), timeout time.Duration) {
	token := c.client.Connect()
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT connect timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Disconnect(timeout time.Duration) {
	c.client.Disconnect(uint(timeout.Milliseconds()))
}

func (c *MQTTClient) commandTopic() string {
	return fmt.Sprintf("%s/#", c.baseTopic())
}

func commandExtractors(baseTopic string) []commandExtractor {
	return []commandExtractor{
		{COMMAND_SWITCH, regexp.MustCompile(fmt.Sprintf("%s/switch/([a-zA-Z0-9_]+)/command", baseTopic)), false},
		{COMMAND_NUMBER, regexp.MustCompile(fmt.Sprintf("%s/number/([a-zA-Z0-9_]+)/set", baseTopic)), true},
		{COMMAND_SELECT, regexp.MustCompile(fmt.Sprintf("%s/select/([a-zA-Z0-9_]+)/set", baseTopic)), false},
		{COMMAND_CLIMATE_TEMP, regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/temperature/set", baseTopic)), true},
		{COMMAND_CLIMATE_MODE, regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/mode/set", baseTopic)), false},
	}
}

func bridgeStateTopic(baseTopic string) string {
	return fmt.Sprintf("%s/bridge/state", baseTopic)
}
