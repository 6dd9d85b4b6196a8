package hiveapi

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/reugn/go-quartz/job"
	"github.com/reugn/go-quartz/quartz"
	"go.uber.org/zap"
)

const minRefreshInterval = 5 * time.Minute

// API is the session surface the bridge talks to. A fake implementation
// lives in test_client.go.
type API interface {
	StartSession(ctx context.Context) (DeviceMap, error)
	Poll(ctx context.Context) (DeviceMap, error)
	Devices() DeviceMap
	SetTargetTemperature(ctx context.Context, id string, target float64) error
	SetHeatingMode(ctx context.Context, id, mode string) error
	SetHeatingBoost(ctx context.Context, id string, minutes int, target float64) error
	SetWaterHeaterMode(ctx context.Context, id, mode string) error
	SetWaterHeaterBoost(ctx context.Context, id string, minutes int) error
	SetSwitch(ctx context.Context, id string, on bool) error
	SetLight(ctx context.Context, id string, on bool, brightness *int) error
	Close() error
}

type SessionConfig struct {
	BaseURL  string
	Username string
	Password string
	Language string
}

// Session owns the API session: token lifecycle, device snapshot and
// product commands. Token refresh is also driven proactively by a quartz
// job so long idle periods do not end in an expired first poll.
type Session struct {
	cfg    SessionConfig
	client *Client
	logger *zap.Logger
	sched  quartz.Scheduler

	mu        sync.RWMutex
	devices   DeviceMap
	productry map[string]string // product id -> product type
}

var _ API = (*Session)(nil)

func NewSession(cfg SessionConfig, logger *zap.Logger) *Session {
	return &Session{
		cfg:    cfg,
		client: NewClient(cfg.BaseURL, cfg.Username, cfg.Password, cfg.Language, logger),
		logger: logger,
	}
}

// StartSession logs in, builds the first device snapshot and starts the
// token refresh job.
func (s *Session) StartSession(ctx context.Context) (DeviceMap, error) {
	if err := s.client.Login(ctx); err != nil {
		return nil, err
	}
	devices, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.startRefreshJob(); err != nil {
		return nil, err
	}
	s.logger.Info("hive session started", zap.Int("devices", devices.Count()))
	return devices, nil
}

// Poll refreshes the device snapshot.
func (s *Session) Poll(ctx context.Context) (DeviceMap, error) {
	s.mu.RLock()
	started := s.devices != nil
	s.mu.RUnlock()
	if !started {
		return nil, ErrNoSession
	}
	return s.fetch(ctx)
}

// Devices returns the last snapshot. Nil before StartSession.
func (s *Session) Devices() DeviceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.devices
}

func (s *Session) SetTargetTemperature(ctx context.Context, id string, target float64) error {
	return s.setState(ctx, id, map[string]any{"target": target})
}

func (s *Session) SetHeatingMode(ctx context.Context, id, mode string) error {
	return s.setState(ctx, id, map[string]any{"mode": mode})
}

func (s *Session) SetHeatingBoost(ctx context.Context, id string, minutes int, target float64) error {
	return s.setState(ctx, id, map[string]any{"mode": ModeBoost, "boost": minutes, "target": target})
}

func (s *Session) SetWaterHeaterMode(ctx context.Context, id, mode string) error {
	return s.setState(ctx, id, map[string]any{"mode": mode})
}

func (s *Session) SetWaterHeaterBoost(ctx context.Context, id string, minutes int) error {
	return s.setState(ctx, id, map[string]any{"mode": ModeBoost, "boost": minutes})
}

func (s *Session) SetSwitch(ctx context.Context, id string, on bool) error {
	return s.setState(ctx, id, map[string]any{"status": onOffStatus(on)})
}

func (s *Session) SetLight(ctx context.Context, id string, on bool, brightness *int) error {
	state := map[string]any{"status": onOffStatus(on)}
	if brightness != nil {
		state["brightness"] = *brightness
	}
	return s.setState(ctx, id, state)
}

func (s *Session) Close() error {
	if s.sched != nil {
		s.sched.Stop()
	}
	return nil
}

func (s *Session) setState(ctx context.Context, id string, state map[string]any) error {
	s.mu.RLock()
	productType, ok := s.productry[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("hive: unknown product %q", id)
	}
	return s.client.SetProductState(ctx, productType, id, state)
}

func (s *Session) fetch(ctx context.Context) (DeviceMap, error) {
	products, err := s.client.Products(ctx)
	if err != nil {
		return nil, err
	}
	devices, err := s.client.Devices(ctx)
	if err != nil {
		return nil, err
	}
	deviceMap := buildDeviceMap(products, devices, s.logger)

	productry := make(map[string]string, len(products))
	for _, p := range products {
		productry[p.ID] = p.Type
	}

	s.mu.Lock()
	s.devices = deviceMap
	s.productry = productry
	s.mu.Unlock()
	return deviceMap, nil
}

func (s *Session) startRefreshJob() error {
	interval := minRefreshInterval
	if token := s.client.Token(); token != nil {
		if lifetime := time.Until(token.Expiry); lifetime > 0 {
			interval = max(lifetime*4/5, minRefreshInterval)
		}
	}

	s.sched = quartz.NewStdScheduler()
	s.sched.Start(context.Background())

	refresh := job.NewFunctionJob(func(ctx context.Context) (bool, error) {
		if err := s.client.Refresh(ctx); err != nil {
			s.logger.Warn("hive token refresh failed", zap.Error(err))
			return false, err
		}
		return true, nil
	})
	return s.sched.ScheduleJob(
		quartz.NewJobDetail(refresh, quartz.NewJobKey("hive_token_refresh")),
		quartz.NewSimpleTrigger(interval))
}

// buildDeviceMap expands API products and devices into platform-bucketed
// records. Products become a primary record in their platform bucket plus
// derived per-feature records; physical devices contribute battery and
// connectivity records.
func buildDeviceMap(products []productPayload, devices []devicePayload, logger *zap.Logger) DeviceMap {
	deviceMap := DeviceMap{}
	add := func(platform string, d Device) {
		deviceMap[platform] = append(deviceMap[platform], d)
	}

	byID := make(map[string]devicePayload, len(devices))
	for _, d := range devices {
		byID[d.ID] = d
	}

	for _, p := range products {
		base := productRecord(p, byID)

		switch p.Type {
		case ProductHeating, ProductTRVControl:
			add(PlatformClimate, base)
			add(PlatformSensor, derive(base, TypeHeatingCurrentTemperature, ""))
			add(PlatformSensor, derive(base, TypeHeatingTargetTemperature, ""))
			add(PlatformSensor, derive(base, TypeHeatingState, CategoryDiagnostic))
			add(PlatformSensor, derive(base, TypeHeatingMode, CategoryDiagnostic))
			add(PlatformSensor, derive(base, TypeHeatingBoost, CategoryDiagnostic))
		case ProductHotWater:
			add(PlatformWaterHeater, base)
			add(PlatformSensor, derive(base, TypeHotwaterState, CategoryDiagnostic))
			add(PlatformSensor, derive(base, TypeHotwaterMode, CategoryDiagnostic))
			add(PlatformSensor, derive(base, TypeHotwaterBoost, CategoryDiagnostic))
		case ProductActivePlug:
			add(PlatformSwitch, base)
			add(PlatformSensor, derive(base, TypePower, ""))
			add(PlatformSensor, derive(base, TypeMode, CategoryDiagnostic))
		case ProductWarmWhiteLight, ProductTuneableLight, ProductColourTunableLight:
			add(PlatformLight, base)
			add(PlatformSensor, derive(base, TypeMode, CategoryDiagnostic))
		case ProductMotionSensor, ProductContactSensor:
			add(PlatformBinarySensor, base)
		case ProductSiren:
			add(PlatformSwitch, base)
		default:
			logger.Debug("skipping unsupported product type", zap.String("type", p.Type), zap.String("id", p.ID))
			continue
		}

		add(PlatformBinarySensor, derive(base, TypeAvailability, CategoryDiagnostic))
	}

	for _, d := range devices {
		base := deviceRecord(d)
		add(PlatformBinarySensor, derive(base, TypeConnectivity, CategoryDiagnostic))
		if d.Props.Battery != nil {
			add(PlatformSensor, derive(base, TypeBattery, CategoryDiagnostic))
		}
	}

	return deviceMap
}

func productRecord(p productPayload, devices map[string]devicePayload) Device {
	rec := Device{
		HiveID:       p.ID,
		HiveType:     p.Type,
		HAName:       p.State.Name,
		DeviceID:     p.Parent,
		ParentDevice: p.Parent,
		State: DeviceState{
			Online:      p.Props.Online,
			Status:      p.State.Status,
			Mode:        p.State.Mode,
			Temperature: p.Props.Temperature,
			Target:      p.State.Target,
			Battery:     p.Props.Battery,
			Power:       p.Props.Power,
			Boost:       p.State.Boost,
			Brightness:  p.Props.Brightness,
		},
	}
	if parent, ok := devices[p.Parent]; ok {
		rec.DeviceName = parent.State.Name
		rec.ParentDevice = parent.Parent
		rec.DeviceData = DeviceData{
			Model:        parent.Props.Model,
			Manufacturer: parent.Props.Manufacturer,
			Version:      parent.Props.Version,
		}
	}
	return rec
}

func deviceRecord(d devicePayload) Device {
	return Device{
		HiveID:       d.ID,
		HiveType:     d.Type,
		HAName:       d.State.Name,
		DeviceID:     d.ID,
		DeviceName:   d.State.Name,
		ParentDevice: d.Parent,
		DeviceData: DeviceData{
			Model:        d.Props.Model,
			Manufacturer: d.Props.Manufacturer,
			Version:      d.Props.Version,
		},
		State: DeviceState{
			Online:  d.Props.Online,
			Battery: d.Props.Battery,
		},
	}
}

func derive(base Device, hiveType, category string) Device {
	d := base
	d.HiveType = hiveType
	d.HAName = fmt.Sprintf("%s %s", base.HAName, featureName(hiveType))
	d.Category = category
	return d
}

func featureName(hiveType string) string {
	name := hiveType
	if i := strings.Index(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

func onOffStatus(on bool) string {
	if on {
		return StatusOn
	}
	return StatusOff
}
