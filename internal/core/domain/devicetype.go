package domain

import "hive2mqtt/pkg/hiveapi"

// EntityMeta is the display metadata attached to one vendor device type.
type EntityMeta struct {
	Icon        string
	DeviceClass string
	StateClass  string
	Unit        string
}

// DeviceTypeMeta maps vendor device type strings to entity metadata. Types
// without an entry get zero metadata, which is valid: the entity is still
// created, it just carries no class or unit.
var DeviceTypeMeta = map[string]EntityMeta{
	hiveapi.ProductContactSensor: {DeviceClass: DEVICE_CLASS_OPENING},
	hiveapi.ProductMotionSensor:  {DeviceClass: DEVICE_CLASS_MOTION},
	hiveapi.TypeConnectivity:     {DeviceClass: DEVICE_CLASS_CONNECTIVITY},
	hiveapi.TypeSmokeCO:          {DeviceClass: DEVICE_CLASS_SMOKE},
	hiveapi.TypeDogBark:          {DeviceClass: DEVICE_CLASS_SOUND},
	hiveapi.TypeGlassBreak:       {DeviceClass: DEVICE_CLASS_SOUND},
	hiveapi.TypeHeatingCurrentTemperature: {
		DeviceClass: DEVICE_CLASS_TEMPERATURE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Unit:        UNIT_CELSIUS,
	},
	hiveapi.TypeHeatingTargetTemperature: {
		DeviceClass: DEVICE_CLASS_TEMPERATURE,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Unit:        UNIT_CELSIUS,
	},
	hiveapi.TypeHeatingState:        {Icon: "mdi:radiator"},
	hiveapi.TypeHeatingMode:         {Icon: "mdi:radiator"},
	hiveapi.TypeHeatingBoost:        {Icon: "mdi:radiator"},
	hiveapi.TypeHotwaterState:       {Icon: "mdi:water-pump"},
	hiveapi.TypeHotwaterMode:        {Icon: "mdi:water-pump"},
	hiveapi.TypeHotwaterBoost:       {Icon: "mdi:water-pump"},
	hiveapi.TypeHeatingHeatOnDemand: {},
	hiveapi.TypeMode:                {Icon: "mdi:eye"},
	hiveapi.TypeAvailability:        {Icon: "mdi:check-circle"},
	hiveapi.ProductWarmWhiteLight:   {},
	hiveapi.ProductTuneableLight:    {},
	hiveapi.ProductColourTunableLight: {},
	hiveapi.ProductActivePlug:         {},
	hiveapi.ProductTRVControl:         {},
	hiveapi.ProductHeating:            {},
	hiveapi.ProductSiren:              {},
	hiveapi.TypeBattery: {
		DeviceClass: DEVICE_CLASS_BATTERY,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Unit:        UNIT_PERCENT,
	},
	hiveapi.TypePower: {
		DeviceClass: DEVICE_CLASS_ENERGY,
		StateClass:  STATE_CLASS_MEASUREMENT,
		Unit:        UNIT_WATT,
	},
}

// PlatformLookup maps vendor platform buckets to the entity platform each
// one is published as. Water heater has no MQTT discovery platform, so its
// mode is exposed as a select entity.
var PlatformLookup = map[string]string{
	hiveapi.PlatformBinarySensor: SENSOR_TYPE_BINARY,
	hiveapi.PlatformClimate:      "climate",
	hiveapi.PlatformLight:        "light",
	hiveapi.PlatformSensor:       SENSOR_TYPE_SENSOR,
	hiveapi.PlatformSwitch:       "switch",
	hiveapi.PlatformWaterHeater:  "select",
}
