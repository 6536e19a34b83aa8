// cmd/simtempctl/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ddelgado/simtempctl/internal/attr"
	"github.com/ddelgado/simtempctl/internal/config"
	"github.com/ddelgado/simtempctl/internal/metrics"
	"github.com/ddelgado/simtempctl/internal/monitor"
	"github.com/ddelgado/simtempctl/internal/publish"
	"github.com/ddelgado/simtempctl/internal/telemetry"
	"github.com/ddelgado/simtempctl/internal/verify"
)

const usage = `usage: simtempctl [-config file] [-v] <command> [arg]

commands:
  monitor                    live temperature monitor (default)
  set-mode <normal|noisy|ramp>
  set-threshold <milli°C>
  set-sampling <ms>
  show-stats                 print driver diagnostic counters
  verify                     configure, wait for alert, restore
`

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml (optional)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// --------------------
	// Load + validate config
	// --------------------

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("config load failed: %v", err)
		}
		cfg = loaded
	}

	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	store := attr.NewSysfsStore(cfg.Device.SysfsDir)

	cmd := "monitor"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	switch cmd {
	case "set-mode":
		mode := requireArg("set-mode")
		if !attr.ValidMode(mode) {
			log.Fatalf("invalid mode %q (want normal|noisy|ramp)", mode)
		}
		applyAttr(store, attr.AttrMode, mode)

	case "set-threshold":
		v := requireArg("set-threshold")
		if _, err := strconv.Atoi(v); err != nil {
			log.Fatalf("threshold must be an integer in milli°C: %q", v)
		}
		applyAttr(store, attr.AttrThreshold, v)

	case "set-sampling":
		v := requireArg("set-sampling")
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			log.Fatalf("sampling must be a positive integer in ms: %q", v)
		}
		applyAttr(store, attr.AttrSamplingMS, v)

	case "show-stats":
		stats, err := store.Get(attr.AttrStats)
		if err != nil {
			log.Fatalf("stats read failed: %v", err)
		}
		fmt.Println(stats)

	case "verify", "run-verification":
		runVerify(cfg, store)

	case "monitor":
		runMonitor(cfg, store)

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func requireArg(cmd string) string {
	if flag.NArg() < 2 {
		log.Fatalf("%s requires a value", cmd)
	}
	return flag.Arg(1)
}

// applyAttr writes an attribute and verifies the device applied it.
// The device may clamp silently; a mismatch reports the effective value.
func applyAttr(store attr.Store, name, value string) {
	err := attr.SetVerified(store, name, value)
	if err == nil {
		fmt.Printf("%s = %s\n", name, value)
		return
	}
	if errors.Is(err, attr.ErrRejected) {
		log.Fatalf("device did not apply %s: %v", name, err)
	}
	log.Fatalf("%s write failed: %v", name, err)
}

// --------------------
// verify
// --------------------

func runVerify(cfg *config.Config, store attr.Store) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	open := func() (verify.Source, error) {
		return telemetry.Open(cfg.Device.Path)
	}

	h, err := verify.New(store, open, verify.Params{
		Mode:            cfg.Verify.Mode,
		ThresholdMilliC: cfg.Verify.ThresholdMC,
		SamplingMS:      cfg.Verify.SamplingMs,
		Timeout:         time.Duration(cfg.Verify.TimeoutMs) * time.Millisecond,
		PollTimeout:     time.Duration(cfg.Verify.PollTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		log.Fatalf("harness build failed: %v", err)
	}

	out, err := h.Run(ctx)
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	if out.Passed {
		fmt.Printf("PASS: alert at %.2f °C after %s\n",
			float64(out.TempMilliC)/1000.0, out.Elapsed.Round(time.Millisecond))
		return
	}

	fmt.Printf("TIMEOUT: no alert within %s\n", out.Elapsed.Round(time.Millisecond))
	os.Exit(1)
}

// --------------------
// monitor
// --------------------

func runMonitor(cfg *config.Config, store attr.Store) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rd, err := telemetry.Open(cfg.Device.Path)
	if err != nil {
		log.Fatalf("telemetry open failed: %v", err)
	}

	// ---- optional instrumentation ----

	var m *metrics.Metrics
	if cfg.Metrics.Addr != "" {
		m = metrics.New()
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.WithError(err).Error("metrics listener failed")
			}
		}()
		log.WithField("addr", cfg.Metrics.Addr).Info("serving /metrics")
	}

	// ---- optional MQTT forwarding ----

	var pub *publish.Publisher
	if cfg.MQTT.Broker != "" {
		pub, err = publish.New(publish.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			DeviceID: cfg.MQTT.DeviceID,
		})
		if err != nil {
			log.Fatalf("mqtt connect failed: %v", err)
		}
		defer pub.Close()
		log.WithField("broker", cfg.MQTT.Broker).Info("forwarding samples")
	}

	// ---- capture worker ----

	mon, err := monitor.New(monitor.Config{
		PollTimeout: time.Duration(cfg.Monitor.PollTimeoutMs) * time.Millisecond,
		WindowSize:  cfg.Monitor.WindowSize,
		Metrics:     m,
	}, rd)
	if err != nil {
		log.Fatalf("monitor build failed: %v", err)
	}

	samples := make(chan monitor.Sample)
	statsCh := make(chan string, 1)

	go monitor.WatchStats(ctx, store,
		time.Duration(cfg.Monitor.StatsIntervalMs)*time.Millisecond, statsCh)

	done := make(chan error, 1)
	go func() { done <- mon.Run(ctx, samples) }()

	fmt.Printf("polling %s for new temperature samples...\n", cfg.Device.Path)

	// Presentation loop. All sample and stats state arrives over
	// channels; nothing here is shared with the capture goroutine.
	for {
		select {
		case err := <-done:
			if err != nil {
				log.Fatalf("monitor stopped: %v", err)
			}
			return

		case s := <-samples:
			alert := "NO"
			if s.Alert {
				alert = "YES"
			}
			fmt.Printf("%s | %6.2f °C | threshold crossed? %s\n",
				time.Now().Format("15:04:05"), s.Celsius(), alert)

			if pub != nil {
				if err := pub.Publish(s); err != nil {
					log.WithError(err).Warn("sample publish failed")
				}
			}

		case text := <-statsCh:
			log.WithField("stats", text).Debug("driver stats")
		}
	}
}
