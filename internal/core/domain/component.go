package domain

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string // measurement, duration, total_increasing
	DeviceClass       string // temperature, energy, battery, ...
	EntityCategory    string // diagnostic, config, nil
	EnabledByDefault  *bool
	Icon              string
}

type GenericSwitch struct {
	Device         Device
	Id             string
	Name           string
	UniqueId       string
	EntityCategory string
	Icon           string
}

type GenericInputNumber struct {
	Device       Device
	Id           string
	Name         string
	UniqueId     string
	Icon         string
	Max          float64
	Min          float64
	Step         float64
	Mode         string
	InitialValue float64
	Unit         string
}

// GenericClimate maps a heating product to an MQTT climate entity.
type GenericClimate struct {
	Device   Device
	Id       string
	Name     string
	UniqueId string
	Icon     string
	MinTemp  float64
	MaxTemp  float64
	TempStep float64
	Modes    []string
}

// GenericWaterHeater maps a hot water product. MQTT has no native water
// heater platform, so it is published as a mode select plus state sensors.
type GenericWaterHeater struct {
	Device   Device
	Id       string
	Name     string
	UniqueId string
	Icon     string
	Modes    []string
}

const (
	SENSOR_ID_BRIDGE_STATE = "bridge"

	STATE_CLASS_DURATION         = "duration"
	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"

	DEVICE_CLASS_BATTERY      = "battery"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	DEVICE_CLASS_ENERGY       = "energy"
	DEVICE_CLASS_MOTION       = "motion"
	DEVICE_CLASS_OPENING      = "opening"
	DEVICE_CLASS_POWER        = "power"
	DEVICE_CLASS_SMOKE        = "smoke"
	DEVICE_CLASS_SOUND        = "sound"
	DEVICE_CLASS_TEMPERATURE  = "temperature"

	ENTITY_CLASS_DIAGNOSTIC = "diagnostic"
	ENTITY_CLASS_CONFIG     = "config"

	SENSOR_TYPE_SENSOR = "sensor"
	SENSOR_TYPE_BINARY = "binary_sensor"

	INPUT_NUMBER_MODE_BOX    = "box"
	INPUT_NUMBER_MODE_SLIDER = "slider"

	UNIT_CELSIUS = "°C"
	UNIT_WATT    = "W"
	UNIT_PERCENT = "%"
	UNIT_MINUTES = "min"

	CLIMATE_MODE_AUTO = "auto"
	CLIMATE_MODE_HEAT = "heat"
	CLIMATE_MODE_OFF  = "off"

	CLIMATE_ACTION_HEATING = "heating"
	CLIMATE_ACTION_IDLE    = "idle"
	CLIMATE_ACTION_OFF     = "off"

	CLIMATE_MIN_TEMP  = 5
	CLIMATE_MAX_TEMP  = 32
	CLIMATE_TEMP_STEP = 0.5
)

const (
	ACTOR_ID_MASTER      = "master"
	ACTOR_ID_HIVE        = "hive"
	ACTOR_ID_POLLER      = "poller"
	ACTOR_ID_MQTT        = "mqtt"
	ACTOR_ID_HADISCOVERY = "hadiscovery"
)
