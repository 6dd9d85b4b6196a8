package config

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Config struct {
	LogLevel zapcore.Level
	Hive     HiveConfig `mapstructure:"hive"`
	MQTT     MQTTConfig `mapstructure:"mqtt"`

	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

type HiveConfig struct {
	Username            string
	Password            string
	Language            string `mapstructure:"language"`
	ApiBaseURL          string `mapstructure:"api_base_url"`
	ScanIntervalSeconds uint32 `mapstructure:"scan_interval_seconds"`
}

type MQTTConfig struct {
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

// CheckConfigBounds validates the parameter bounds defaults cannot express.
func CheckConfigBounds(cfg *Config) error {
	if cfg.Hive.Username == "" || cfg.Hive.Password == "" {
		return errors.New("config params hive.username and hive.password are required")
	}
	if cfg.Hive.ScanIntervalSeconds < 15 {
		return errors.New("config param hive.scan_interval_seconds should be >= 15")
	}
	return nil
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}
