// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Device.Path == "" {
		return fmt.Errorf("device.path must not be empty")
	}
	if cfg.Device.SysfsDir == "" {
		return fmt.Errorf("device.sysfs_dir must not be empty")
	}

	if cfg.Monitor.PollTimeoutMs <= 0 {
		return fmt.Errorf("monitor.poll_timeout_ms must be > 0, got %d", cfg.Monitor.PollTimeoutMs)
	}
	if cfg.Monitor.WindowSize <= 0 {
		return fmt.Errorf("monitor.window_size must be > 0, got %d", cfg.Monitor.WindowSize)
	}
	if cfg.Monitor.StatsIntervalMs <= 0 {
		return fmt.Errorf("monitor.stats_interval_ms must be > 0, got %d", cfg.Monitor.StatsIntervalMs)
	}

	switch cfg.Verify.Mode {
	case "normal", "noisy", "ramp":
	default:
		return fmt.Errorf("verify.mode must be normal|noisy|ramp, got %q", cfg.Verify.Mode)
	}
	if cfg.Verify.ThresholdMC <= 0 {
		return fmt.Errorf("verify.threshold_mc must be > 0, got %d", cfg.Verify.ThresholdMC)
	}
	if cfg.Verify.SamplingMs <= 0 {
		return fmt.Errorf("verify.sampling_ms must be > 0, got %d", cfg.Verify.SamplingMs)
	}
	if cfg.Verify.TimeoutMs <= 0 {
		return fmt.Errorf("verify.timeout_ms must be > 0, got %d", cfg.Verify.TimeoutMs)
	}
	if cfg.Verify.PollTimeoutMs <= 0 {
		return fmt.Errorf("verify.poll_timeout_ms must be > 0, got %d", cfg.Verify.PollTimeoutMs)
	}

	// MQTT is opt-in; topic only matters once a broker is set.
	if cfg.MQTT.Broker != "" && cfg.MQTT.Topic == "" {
		return fmt.Errorf("mqtt.topic must not be empty when mqtt.broker is set")
	}

	return nil
}
