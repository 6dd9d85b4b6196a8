package domain

import (
	"testing"

	"hive2mqtt/pkg/hiveapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSensorRecord() hiveapi.Device {
	return hiveapi.Device{
		HiveID:       "prod-heating-1",
		HiveType:     hiveapi.TypeHeatingCurrentTemperature,
		HAName:       "Heating Current Temperature",
		DeviceID:     "dev-boiler-1",
		DeviceName:   "Boiler Module",
		ParentDevice: "dev-hub-1",
		DeviceData:   hiveapi.DeviceData{Model: "SLR1b", Manufacturer: "Hive", Version: "2.1"},
	}
}

func TestBuildSensorDerivesIds(t *testing.T) {
	sensor, err := BuildSensor(tempSensorRecord(), SENSOR_TYPE_SENSOR)
	require.NoError(t, err)

	assert.Equal(t, "prod-heating-1-Heating_Current_Temperature", sensor.UniqueId)
	assert.Equal(t, "prod_heating_1_heating_current_temperature", sensor.Id)
	assert.Equal(t, "Heating Current Temperature", sensor.Name)
}

func TestBuildSensorAppliesTypeMeta(t *testing.T) {
	sensor, err := BuildSensor(tempSensorRecord(), SENSOR_TYPE_SENSOR)
	require.NoError(t, err)

	assert.Equal(t, DEVICE_CLASS_TEMPERATURE, sensor.DeviceClass)
	assert.Equal(t, STATE_CLASS_MEASUREMENT, sensor.StateClass)
	assert.Equal(t, UNIT_CELSIUS, sensor.UnitOfMeasurement)
	assert.Empty(t, sensor.Icon)

	rec := tempSensorRecord()
	rec.HiveType = hiveapi.TypeHeatingState
	sensor, err = BuildSensor(rec, SENSOR_TYPE_SENSOR)
	require.NoError(t, err)
	assert.Equal(t, "mdi:radiator", sensor.Icon)
	assert.Empty(t, sensor.DeviceClass)
}

func TestBuildSensorDeviceInfo(t *testing.T) {
	sensor, err := BuildSensor(tempSensorRecord(), SENSOR_TYPE_SENSOR)
	require.NoError(t, err)

	assert.Equal(t, "dev-boiler-1", sensor.Device.Id)
	assert.Equal(t, "Boiler Module", sensor.Device.Name)
	assert.Equal(t, "SLR1b", sensor.Device.Model)
	assert.Equal(t, "Hive", sensor.Device.Manufacturer)
	assert.Equal(t, "2.1", sensor.Device.Version)
	assert.Equal(t, "dev-hub-1", sensor.Device.ViaDevice)
}

func TestBuildSensorMissingKeys(t *testing.T) {
	rec := tempSensorRecord()
	rec.HiveID = ""
	_, err := BuildSensor(rec, SENSOR_TYPE_SENSOR)
	assert.ErrorIs(t, err, ErrMissingHiveID)

	rec = tempSensorRecord()
	rec.HiveType = ""
	_, err = BuildSensor(rec, SENSOR_TYPE_SENSOR)
	assert.ErrorIs(t, err, ErrMissingType)

	rec = tempSensorRecord()
	rec.HAName = ""
	_, err = BuildSensor(rec, SENSOR_TYPE_SENSOR)
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestBuildClimate(t *testing.T) {
	rec := tempSensorRecord()
	rec.HiveType = hiveapi.ProductHeating
	rec.HAName = "Heating"

	climate, err := BuildClimate(rec)
	require.NoError(t, err)
	assert.Equal(t, "prod-heating-1-heating", climate.UniqueId)
	assert.Equal(t, []string{CLIMATE_MODE_AUTO, CLIMATE_MODE_HEAT, CLIMATE_MODE_OFF}, climate.Modes)
	assert.InDelta(t, CLIMATE_TEMP_STEP, climate.TempStep, 0.001)
}

func TestClimateModeTranslation(t *testing.T) {
	assert.Equal(t, CLIMATE_MODE_AUTO, ClimateModeFromHive(hiveapi.ModeSchedule, ""))
	assert.Equal(t, CLIMATE_MODE_HEAT, ClimateModeFromHive(hiveapi.ModeManual, ""))
	assert.Equal(t, CLIMATE_MODE_HEAT, ClimateModeFromHive(hiveapi.ModeBoost, ""))
	assert.Equal(t, CLIMATE_MODE_OFF, ClimateModeFromHive(hiveapi.ModeOff, ""))
	assert.Equal(t, CLIMATE_MODE_HEAT, ClimateModeFromHive("", hiveapi.StatusOn))

	mode, err := HiveModeFromClimate(CLIMATE_MODE_AUTO)
	require.NoError(t, err)
	assert.Equal(t, hiveapi.ModeSchedule, mode)

	_, err = HiveModeFromClimate("tropical")
	assert.Error(t, err)
}

func TestDeviceTypeMetaTable(t *testing.T) {
	// rows carried over from the vendor integration stay intact
	assert.Equal(t, DEVICE_CLASS_OPENING, DeviceTypeMeta[hiveapi.ProductContactSensor].DeviceClass)
	assert.Equal(t, DEVICE_CLASS_MOTION, DeviceTypeMeta[hiveapi.ProductMotionSensor].DeviceClass)
	assert.Equal(t, DEVICE_CLASS_SOUND, DeviceTypeMeta[hiveapi.TypeDogBark].DeviceClass)
	assert.Equal(t, "mdi:eye", DeviceTypeMeta[hiveapi.TypeMode].Icon)
	assert.Equal(t, UNIT_WATT, DeviceTypeMeta[hiveapi.TypePower].Unit)

	// product types with no metadata still have an entry
	_, ok := DeviceTypeMeta[hiveapi.ProductActivePlug]
	assert.True(t, ok)
}
