// internal/config/config.go
package config

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Monitor MonitorConfig `yaml:"monitor"`
	Verify  VerifyConfig  `yaml:"verify"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	// Path is the telemetry character device.
	Path string `yaml:"path"`
	// SysfsDir holds the attribute files (mode, threshold_mC, sampling_ms, stats).
	SysfsDir string `yaml:"sysfs_dir"`
}

// ---- MONITOR ----

type MonitorConfig struct {
	PollTimeoutMs   int `yaml:"poll_timeout_ms"`
	WindowSize      int `yaml:"window_size"`
	StatsIntervalMs int `yaml:"stats_interval_ms"`
}

// ---- VERIFY ----

// VerifyConfig is the test configuration the harness pushes to the device.
// Deployments disagree on these constants; they are parameters, not truths.
type VerifyConfig struct {
	Mode          string `yaml:"mode"`
	ThresholdMC   int    `yaml:"threshold_mc"`
	SamplingMs    int    `yaml:"sampling_ms"`
	TimeoutMs     int    `yaml:"timeout_ms"`
	PollTimeoutMs int    `yaml:"poll_timeout_ms"`
}

// ---- MQTT (optional) ----

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // empty = forwarding disabled
	Topic    string `yaml:"topic"`
	DeviceID string `yaml:"device_id"`
}

// ---- METRICS (optional) ----

type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty = no /metrics listener
}
