// internal/config/normalize.go
package config

// Defaults for everything the operator leaves unset.
const (
	DefaultDevicePath = "/dev/simtemp"
	DefaultSysfsDir   = "/sys/class/misc/simtemp"

	DefaultPollTimeoutMs   = 500
	DefaultWindowSize      = 50
	DefaultStatsIntervalMs = 1000

	DefaultVerifyMode        = "ramp"
	DefaultVerifyThresholdMC = 41000
	DefaultVerifySamplingMs  = 100
	DefaultVerifyTimeoutMs   = 10000

	DefaultMQTTTopic    = "simtemp/samples"
	DefaultMQTTDeviceID = "simtemp0"
)

// Normalize fills in defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Device.Path == "" {
		cfg.Device.Path = DefaultDevicePath
	}
	if cfg.Device.SysfsDir == "" {
		cfg.Device.SysfsDir = DefaultSysfsDir
	}

	if cfg.Monitor.PollTimeoutMs == 0 {
		cfg.Monitor.PollTimeoutMs = DefaultPollTimeoutMs
	}
	if cfg.Monitor.WindowSize == 0 {
		cfg.Monitor.WindowSize = DefaultWindowSize
	}
	if cfg.Monitor.StatsIntervalMs == 0 {
		cfg.Monitor.StatsIntervalMs = DefaultStatsIntervalMs
	}

	if cfg.Verify.Mode == "" {
		cfg.Verify.Mode = DefaultVerifyMode
	}
	if cfg.Verify.ThresholdMC == 0 {
		cfg.Verify.ThresholdMC = DefaultVerifyThresholdMC
	}
	if cfg.Verify.SamplingMs == 0 {
		cfg.Verify.SamplingMs = DefaultVerifySamplingMs
	}
	if cfg.Verify.TimeoutMs == 0 {
		cfg.Verify.TimeoutMs = DefaultVerifyTimeoutMs
	}
	if cfg.Verify.PollTimeoutMs == 0 {
		cfg.Verify.PollTimeoutMs = DefaultPollTimeoutMs
	}

	if cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = DefaultMQTTTopic
	}
	if cfg.MQTT.DeviceID == "" {
		cfg.MQTT.DeviceID = DefaultMQTTDeviceID
	}
}
