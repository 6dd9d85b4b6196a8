package hiveapi

// Platform buckets a device can be assigned to.
const (
	PlatformBinarySensor = "binary_sensor"
	PlatformClimate      = "climate"
	PlatformLight        = "light"
	PlatformSensor       = "sensor"
	PlatformSwitch       = "switch"
	PlatformWaterHeater  = "water_heater"
)

// Product types as reported by the Hive API.
const (
	ProductHeating            = "heating"
	ProductTRVControl         = "trvcontrol"
	ProductHotWater           = "hotwater"
	ProductActivePlug         = "activeplug"
	ProductWarmWhiteLight     = "warmwhitelight"
	ProductTuneableLight      = "tuneablelight"
	ProductColourTunableLight = "colourtunablelight"
	ProductMotionSensor       = "motionsensor"
	ProductContactSensor      = "contactsensor"
	ProductSiren              = "siren"
)

// Physical device types as reported by the Hive API.
const (
	DeviceHub          = "hub"
	DeviceBoilerModule = "boilermodule"
	DeviceThermostatUI = "thermostatui"
	DeviceTRV          = "trv"
	DeviceSensor       = "sensor"
)

// Derived per-feature types. A single product expands into one record per
// feature so each one can become its own entity downstream.
const (
	TypeHeatingCurrentTemperature = "Heating_Current_Temperature"
	TypeHeatingTargetTemperature  = "Heating_Target_Temperature"
	TypeHeatingState              = "Heating_State"
	TypeHeatingMode               = "Heating_Mode"
	TypeHeatingBoost              = "Heating_Boost"
	TypeHeatingHeatOnDemand       = "Heating_Heat_On_Demand"
	TypeHotwaterState             = "Hotwater_State"
	TypeHotwaterMode              = "Hotwater_Mode"
	TypeHotwaterBoost             = "Hotwater_Boost"
	TypeMode                      = "Mode"
	TypeAvailability              = "Availability"
	TypeConnectivity              = "Connectivity"
	TypeBattery                   = "Battery"
	TypePower                     = "Power"
	TypeSmokeCO                   = "SMOKE_CO"
	TypeDogBark                   = "DOG_BARK"
	TypeGlassBreak                = "GLASS_BREAK"
)

// Operating modes accepted by heating and hot water products.
const (
	ModeSchedule = "SCHEDULE"
	ModeManual   = "MANUAL"
	ModeOff      = "OFF"
	ModeBoost    = "BOOST"

	StatusOn  = "ON"
	StatusOff = "OFF"
)

// Entity categories understood downstream.
const (
	CategoryConfig     = "config"
	CategoryDiagnostic = "diagnostic"
)

// DeviceData carries the registry info of the physical device backing a record.
type DeviceData struct {
	Model        string
	Manufacturer string
	Version      string
}

// DeviceState is the last known runtime state of a record.
type DeviceState struct {
	Online      bool
	Status      string
	Mode        string
	Temperature *float64
	Target      *float64
	Battery     *int
	Power       *float64
	Boost       *int
	Brightness  *int
}

// Device is one vendor device record: either a product/physical device or a
// derived per-feature record pointing at its parent through ParentDevice.
type Device struct {
	HiveID       string
	HiveType     string
	HAName       string
	DeviceID     string
	DeviceName   string
	ParentDevice string
	Category     string
	DeviceData   DeviceData
	State        DeviceState
}

// DeviceMap groups device records by platform bucket.
type DeviceMap map[string][]Device

func (m DeviceMap) Count() int {
	n := 0
	for _, list := range m {
		n += len(list)
	}
	return n
}

func (m DeviceMap) Find(hiveID, hiveType string) *Device {
	for _, list := range m {
		for i := range list {
			if list[i].HiveID == hiveID && list[i].HiveType == hiveType {
				return &list[i]
			}
		}
	}
	return nil
}

// API payloads

type loginResponse struct {
	Token        string `json:"token"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type productPayload struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Parent string `json:"parent"`
	State  struct {
		Name   string   `json:"name"`
		Status string   `json:"status"`
		Mode   string   `json:"mode"`
		Target *float64 `json:"target"`
		Boost  *int     `json:"boost"`
	} `json:"state"`
	Props struct {
		Online      bool     `json:"online"`
		Temperature *float64 `json:"temperature"`
		Battery     *int     `json:"battery"`
		Power       *float64 `json:"power"`
		Brightness  *int     `json:"brightness"`
		Motion      *bool    `json:"motion"`
		Open        *bool    `json:"open"`
	} `json:"props"`
}

type devicePayload struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Parent string `json:"parent"`
	State  struct {
		Name string `json:"name"`
	} `json:"state"`
	Props struct {
		Online       bool   `json:"online"`
		Model        string `json:"model"`
		Manufacturer string `json:"manufacturer"`
		Version      string `json:"version"`
		Battery      *int   `json:"battery"`
	} `json:"props"`
}
