package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/carlmjohnson/versioninfo"
)

// BridgeDevice is the registry device every bridge-level entity hangs from.
func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("hive_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "hive2mqtt",
		Model:        "Hive MQTT bridge",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Hive Bridge %s", md5HashShort(baseTopic)),
	}
}

// IdDevice trims a device to its identity so repeated discovery payloads
// stay small.
func IdDevice(device Device) Device {
	return Device{
		Id:   device.Id,
		Name: device.Name,
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       bridgeUniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func bridgeUniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5HashShort(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])[0:8]
}
