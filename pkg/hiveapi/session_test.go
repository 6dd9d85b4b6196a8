package hiveapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProducts() []map[string]any {
	return []map[string]any{
		{
			"id":     "prod-heating-1",
			"type":   "heating",
			"parent": "dev-boiler-1",
			"state":  map[string]any{"name": "Heating", "status": "ON", "mode": "SCHEDULE", "target": 21.0},
			"props":  map[string]any{"online": true, "temperature": 19.5},
		},
		{
			"id":     "prod-plug-1",
			"type":   "activeplug",
			"parent": "dev-plug-1",
			"state":  map[string]any{"name": "TV Plug", "status": "OFF", "mode": "MANUAL"},
			"props":  map[string]any{"online": true, "power": 0.0},
		},
		{
			"id":     "prod-mystery-1",
			"type":   "teleporter",
			"parent": "dev-hub-1",
			"state":  map[string]any{"name": "Mystery"},
			"props":  map[string]any{"online": true},
		},
	}
}

func testDevices() []map[string]any {
	return []map[string]any{
		{
			"id":    "dev-hub-1",
			"type":  "hub",
			"state": map[string]any{"name": "Hive Hub"},
			"props": map[string]any{"online": true, "model": "HHKF", "manufacturer": "Hive", "version": "1.0"},
		},
		{
			"id":     "dev-boiler-1",
			"type":   "boilermodule",
			"parent": "dev-hub-1",
			"state":  map[string]any{"name": "Boiler Module"},
			"props":  map[string]any{"online": true, "model": "SLR1b", "manufacturer": "Hive", "version": "2.1", "battery": 74},
		},
		{
			"id":     "dev-plug-1",
			"type":   "activeplug",
			"parent": "dev-hub-1",
			"state":  map[string]any{"name": "TV Plug Device"},
			"props":  map[string]any{"online": true, "model": "SLP2", "manufacturer": "Hive", "version": "1.7"},
		},
	}
}

func startTestSession(t *testing.T) (*Session, *fakeAPI, DeviceMap) {
	t.Helper()

	api := newFakeAPI()
	api.products = testProducts()
	api.devices = testDevices()
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)

	session := NewSession(SessionConfig{
		BaseURL:  srv.URL,
		Username: "user@example.com",
		Password: "hunter2",
	}, zap.NewNop())
	t.Cleanup(func() { _ = session.Close() })

	devices, err := session.StartSession(context.Background())
	require.NoError(t, err)
	return session, api, devices
}

func TestStartSessionBucketsDevices(t *testing.T) {
	_, _, devices := startTestSession(t)

	require.Len(t, devices[PlatformClimate], 1)
	require.Len(t, devices[PlatformSwitch], 1)
	assert.Equal(t, "prod-heating-1", devices[PlatformClimate][0].HiveID)
	assert.Equal(t, "heating", devices[PlatformClimate][0].HiveType)

	// climate expands into heating feature sensors, the plug adds power and
	// mode sensors, the boiler module adds a battery sensor
	var sensorTypes []string
	for _, d := range devices[PlatformSensor] {
		sensorTypes = append(sensorTypes, d.HiveType)
	}
	assert.Contains(t, sensorTypes, TypeHeatingCurrentTemperature)
	assert.Contains(t, sensorTypes, TypeHeatingTargetTemperature)
	assert.Contains(t, sensorTypes, TypeHeatingMode)
	assert.Contains(t, sensorTypes, TypePower)
	assert.Contains(t, sensorTypes, TypeBattery)

	// every physical device gets a connectivity record
	connectivity := 0
	for _, d := range devices[PlatformBinarySensor] {
		if d.HiveType == TypeConnectivity {
			connectivity++
		}
	}
	assert.Equal(t, 3, connectivity)
}

func TestStartSessionSkipsUnknownProducts(t *testing.T) {
	_, _, devices := startTestSession(t)
	assert.Nil(t, devices.Find("prod-mystery-1", "teleporter"))
}

func TestProductRecordInheritsDeviceData(t *testing.T) {
	_, _, devices := startTestSession(t)

	climate := devices[PlatformClimate][0]
	assert.Equal(t, "dev-boiler-1", climate.DeviceID)
	assert.Equal(t, "Boiler Module", climate.DeviceName)
	assert.Equal(t, "dev-hub-1", climate.ParentDevice)
	assert.Equal(t, "SLR1b", climate.DeviceData.Model)
	assert.Equal(t, "Hive", climate.DeviceData.Manufacturer)
	assert.Equal(t, "2.1", climate.DeviceData.Version)
}

func TestDerivedRecordNames(t *testing.T) {
	_, _, devices := startTestSession(t)

	current := devices.Find("prod-heating-1", TypeHeatingCurrentTemperature)
	require.NotNil(t, current)
	assert.Equal(t, "Heating Current Temperature", current.HAName)
	assert.Equal(t, "", current.Category)

	mode := devices.Find("prod-heating-1", TypeHeatingMode)
	require.NotNil(t, mode)
	assert.Equal(t, CategoryDiagnostic, mode.Category)
}

func TestSessionCommands(t *testing.T) {
	session, _, _ := startTestSession(t)

	require.NoError(t, session.SetTargetTemperature(context.Background(), "prod-heating-1", 21.5))
	require.NoError(t, session.SetSwitch(context.Background(), "prod-plug-1", true))

	err := session.SetTargetTemperature(context.Background(), "no-such-product", 20)
	assert.Error(t, err)
}

func TestPollBeforeStartFails(t *testing.T) {
	session := NewSession(SessionConfig{BaseURL: "http://localhost:0"}, zap.NewNop())
	_, err := session.Poll(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}
