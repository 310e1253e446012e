// cmd/dashboard/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/tamzrod/sensor-dashboard/internal/alarm"
	"github.com/tamzrod/sensor-dashboard/internal/availability"
	"github.com/tamzrod/sensor-dashboard/internal/config"
	"github.com/tamzrod/sensor-dashboard/internal/device"
	"github.com/tamzrod/sensor-dashboard/internal/httpapi"
	"github.com/tamzrod/sensor-dashboard/internal/kvstore"
	"github.com/tamzrod/sensor-dashboard/internal/logs"
	"github.com/tamzrod/sensor-dashboard/internal/nav"
	"github.com/tamzrod/sensor-dashboard/internal/poller"
	"github.com/tamzrod/sensor-dashboard/internal/readings"
	"github.com/tamzrod/sensor-dashboard/internal/spacestate"
	"github.com/tamzrod/sensor-dashboard/internal/sysinfo"
	"github.com/tamzrod/sensor-dashboard/internal/writer"
)

const shutdownTimeout = 5 * time.Second

func newDevice(cfg *config.Config) (*device.Client, error) {
	d := cfg.Dashboard.Device
	return device.New(device.Config{
		BaseURL: d.BaseURL,
		Timeout: time.Duration(d.TimeoutMs) * time.Millisecond,
	})
}

func newStore(a config.AvailabilityConfig) kvstore.Store {
	if a.CacheFile == "" {
		return kvstore.NewMemoryStore()
	}
	return kvstore.NewFileStore(a.CacheFile)
}

func buildChecker(cfg *config.Config) (*availability.Checker, error) {
	dev, err := newDevice(cfg)
	if err != nil {
		return nil, err
	}
	return newChecker(cfg, dev), nil
}

func newChecker(cfg *config.Config, dev *device.Client) *availability.Checker {
	a := cfg.Dashboard.Availability

	cache := availability.NewCache(newStore(a), a.SpecificModule)
	fetcher := availability.NewFetcher(dev, a.ModulesPath, a.SpecificModule, nil)

	return availability.NewChecker(
		cache,
		fetcher,
		time.Duration(a.TTLMs)*time.Millisecond,
		nil,
	)
}

func newDeviceViews(cfg *config.Config, dev *device.Client) httpapi.DeviceViews {
	dc := cfg.Dashboard
	return httpapi.DeviceViews{
		Logs:   logs.NewReader(dev, ""),
		Alarm:  alarm.NewReader(dev, dc.Availability.SpecificModule, dc.Readings.Path),
		System: sysinfo.NewReader(dev),
		Space:  spacestate.NewClient(dev),
	}
}

// run listens on the configured address and serves until ctx is done.
func run(ctx context.Context, cfg *config.Config) error {
	ln, err := net.Listen("tcp", cfg.Dashboard.Listen)
	if err != nil {
		return fmt.Errorf("http listen %s: %w", cfg.Dashboard.Listen, err)
	}
	return serve(ctx, cfg, ln)
}

// serve wires every component onto ln and blocks until ctx is done.
// It owns ln and closes it on return.
func serve(ctx context.Context, cfg *config.Config, ln net.Listener) error {
	dc := cfg.Dashboard
	defer ln.Close()

	dev, err := newDevice(cfg)
	if err != nil {
		return err
	}
	checker := newChecker(cfg, dev)

	// ---- nav ----
	menu := nav.NewMenu(nav.DefaultEntries(
		dc.Nav.SensorsGroupID,
		dc.Nav.SpecificEntryID,
		dc.Availability.SpecificModule,
	))
	ctrl := nav.NewController(menu, dc.Nav.SensorsGroupID, dc.Nav.SpecificEntryID)

	// ---- exports ----
	// Unreachable endpoints do not fail here; they show up as write errors.
	exports, closeExports, err := writer.Build(writer.BuildPlan(dc.Exports))
	if err != nil {
		return fmt.Errorf("exports build failed: %w", err)
	}
	defer func() {
		if err := closeExports(); err != nil {
			log.Printf("exports close failed: %v", err)
		}
	}()

	// ---- pollers ----
	availPoller, err := poller.BuildAvailability(dc.Availability, checker)
	if err != nil {
		return fmt.Errorf("availability poller build failed: %w", err)
	}
	availOut := make(chan availability.Result)
	go availPoller.Run(ctx, availOut)

	board := readings.NewBoard()
	var readOut chan readings.Result // nil => readings disabled, never selected
	if !dc.Readings.Disabled {
		rp, err := poller.BuildReadings(dc.Readings, readings.NewFetcher(dev, dc.Readings.Path, nil))
		if err != nil {
			return fmt.Errorf("readings poller build failed: %w", err)
		}
		readOut = make(chan readings.Result)
		go rp.Run(ctx, readOut)
	}

	// ---- http ----
	api := httpapi.NewServer(menu, checker, board, newDeviceViews(cfg, dev))
	srv := &http.Server{
		Handler:           httpapi.NewRouter(api),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Printf("http: listening (addr=%s)", ln.Addr())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	// Orchestrator: owns every state transition driven by poll results.
	var lastSource availability.Source
	for {
		select {
		case <-ctx.Done():
			shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutCtx)

		case err := <-srvErr:
			return fmt.Errorf("http server failed: %w", err)

		case res := <-availOut:
			ctrl.Apply(res.Snapshot)
			api.SetAvailability(res)

			if res.Source != lastSource {
				if res.Err != nil {
					log.Printf("availability: source=%s (err=%v)", res.Source, res.Err)
				} else {
					log.Printf("availability: source=%s sensors=%t specific=%t",
						res.Source, res.Snapshot.SensorsAvailable, res.Snapshot.SpecificAvailable)
				}
				lastSource = res.Source
			}

			if err := exports.Write(res); err != nil {
				log.Printf("export error: %v", err)
			}

		case res := <-readOut:
			if res.Err != nil {
				log.Printf("readings: poll failed: %v", res.Err)
			}
			board.Update(res)
		}
	}
}
