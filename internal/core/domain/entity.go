package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"hive2mqtt/pkg/hiveapi"
)

var (
	ErrMissingHiveID = errors.New("device record has no hive id")
	ErrMissingType   = errors.New("device record has no hive type")
	ErrMissingName   = errors.New("device record has no name")
)

var nonTopicChars = regexp.MustCompile("[^a-z0-9_]+")

// EntityId derives the stable entity id used in MQTT topics from a vendor
// device record.
func EntityId(dev hiveapi.Device) string {
	id := strings.ToLower(fmt.Sprintf("%s_%s", dev.HiveID, dev.HiveType))
	return nonTopicChars.ReplaceAllString(id, "_")
}

// UniqueId derives the registry unique id the same way the Hive cloud
// integration always has: "{hiveID}-{hiveType}".
func UniqueId(dev hiveapi.Device) string {
	return fmt.Sprintf("%s-%s", dev.HiveID, dev.HiveType)
}

// EntityDevice maps a vendor device record to the device registry record
// all of its entities hang from.
func EntityDevice(dev hiveapi.Device) Device {
	return Device{
		Id:           dev.DeviceID,
		Name:         dev.DeviceName,
		Model:        dev.DeviceData.Model,
		Manufacturer: dev.DeviceData.Manufacturer,
		Version:      dev.DeviceData.Version,
		ViaDevice:    dev.ParentDevice,
	}
}

func validate(dev hiveapi.Device) error {
	if dev.HiveID == "" {
		return ErrMissingHiveID
	}
	if dev.HiveType == "" {
		return ErrMissingType
	}
	if dev.HAName == "" {
		return ErrMissingName
	}
	return nil
}

// BuildSensor maps a vendor record from the sensor or binary_sensor bucket.
func BuildSensor(dev hiveapi.Device, sensorType string) (GenericSensor, error) {
	if err := validate(dev); err != nil {
		return GenericSensor{}, err
	}
	meta := DeviceTypeMeta[dev.HiveType]
	return GenericSensor{
		Device:            EntityDevice(dev),
		Id:                EntityId(dev),
		SensorType:        sensorType,
		Name:              dev.HAName,
		UniqueId:          UniqueId(dev),
		UnitOfMeasurement: meta.Unit,
		StateClass:        meta.StateClass,
		DeviceClass:       meta.DeviceClass,
		EntityCategory:    dev.Category,
		Icon:              meta.Icon,
	}, nil
}

// BuildSwitch maps a vendor record from the switch bucket.
func BuildSwitch(dev hiveapi.Device) (GenericSwitch, error) {
	if err := validate(dev); err != nil {
		return GenericSwitch{}, err
	}
	meta := DeviceTypeMeta[dev.HiveType]
	return GenericSwitch{
		Device:         EntityDevice(dev),
		Id:             EntityId(dev),
		Name:           dev.HAName,
		UniqueId:       UniqueId(dev),
		EntityCategory: dev.Category,
		Icon:           meta.Icon,
	}, nil
}

// BuildClimate maps a heating or TRV record.
func BuildClimate(dev hiveapi.Device) (GenericClimate, error) {
	if err := validate(dev); err != nil {
		return GenericClimate{}, err
	}
	meta := DeviceTypeMeta[dev.HiveType]
	return GenericClimate{
		Device:   EntityDevice(dev),
		Id:       EntityId(dev),
		Name:     dev.HAName,
		UniqueId: UniqueId(dev),
		Icon:     meta.Icon,
		MinTemp:  CLIMATE_MIN_TEMP,
		MaxTemp:  CLIMATE_MAX_TEMP,
		TempStep: CLIMATE_TEMP_STEP,
		Modes:    []string{CLIMATE_MODE_AUTO, CLIMATE_MODE_HEAT, CLIMATE_MODE_OFF},
	}, nil
}

// BuildWaterHeater maps a hot water record.
func BuildWaterHeater(dev hiveapi.Device) (GenericWaterHeater, error) {
	if err := validate(dev); err != nil {
		return GenericWaterHeater{}, err
	}
	return GenericWaterHeater{
		Device:   EntityDevice(dev),
		Id:       EntityId(dev),
		Name:     dev.HAName,
		UniqueId: UniqueId(dev),
		Icon:     "mdi:water-pump",
		Modes:    []string{hiveapi.ModeSchedule, hiveapi.ModeManual, hiveapi.ModeOff},
	}, nil
}

// BuildBoostInputNumber exposes the boost duration of a heating product as
// a writable number entity.
func BuildBoostInputNumber(dev hiveapi.Device) (GenericInputNumber, error) {
	if err := validate(dev); err != nil {
		return GenericInputNumber{}, err
	}
	boost := dev
	boost.HiveType = hiveapi.TypeHeatingBoost
	return GenericInputNumber{
		Device:       EntityDevice(dev),
		Id:           EntityId(boost) + "_minutes",
		Name:         dev.HAName + " Boost Minutes",
		UniqueId:     UniqueId(boost) + "-minutes",
		Icon:         "mdi:radiator",
		Min:          0,
		Max:          480,
		Step:         15,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: 60,
		Unit:         UNIT_MINUTES,
	}, nil
}

// ClimateModeFromHive translates a vendor heating mode into the climate
// entity vocabulary.
func ClimateModeFromHive(mode, status string) string {
	switch mode {
	case hiveapi.ModeSchedule:
		return CLIMATE_MODE_AUTO
	case hiveapi.ModeManual, hiveapi.ModeBoost:
		return CLIMATE_MODE_HEAT
	case hiveapi.ModeOff:
		return CLIMATE_MODE_OFF
	default:
		if status == hiveapi.StatusOn {
			return CLIMATE_MODE_HEAT
		}
		return CLIMATE_MODE_OFF
	}
}

// HiveModeFromClimate is the reverse translation for inbound commands.
func HiveModeFromClimate(mode string) (string, error) {
	switch mode {
	case CLIMATE_MODE_AUTO:
		return hiveapi.ModeSchedule, nil
	case CLIMATE_MODE_HEAT:
		return hiveapi.ModeManual, nil
	case CLIMATE_MODE_OFF:
		return hiveapi.ModeOff, nil
	default:
		return "", fmt.Errorf("unknown climate mode %q", mode)
	}
}
