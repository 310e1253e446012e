// cmd/dashboard/app_test.go
package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tamzrod/sensor-dashboard/internal/config"
)

// startServe runs serve on a loopback listener and returns its base URL.
// The returned stop cancels serve and waits for it to return.
func startServe(t *testing.T, cfg *config.Config) (string, func()) {
	t.Helper()

	if err := config.Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	config.Normalize(cfg)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, ln) }()

	stop := func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("serve returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("serve did not return after cancel")
		}
	}
	return "http://" + ln.Addr().String(), stop
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		return 0, err.Error()
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// eventually retries cond until it holds or the deadline passes.
func eventually(t *testing.T, what string, cond func() (bool, string)) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var last string
	for time.Now().Before(deadline) {
		ok, state := cond()
		if ok {
			return
		}
		last = state
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("%s: not reached, last state:\n%s", what, last)
}

func dashboardConfig(deviceURL string) *config.Config {
	return &config.Config{Dashboard: config.DashboardConfig{
		Device:       config.DeviceConfig{BaseURL: deviceURL, TimeoutMs: 500},
		Availability: config.AvailabilityConfig{TTLMs: 50, IntervalMs: 50},
		Readings:     config.ReadingsConfig{Disabled: true},
		Exports: config.ExportsConfig{
			// Nothing listens on port 1.
			Modbus: &config.ModbusExportConfig{Endpoint: "127.0.0.1:1", UnitID: 1, TimeoutMs: 200},
		},
	}}
}

func TestServe_FailOpenThenHidesEmptyModules(t *testing.T) {
	var empty atomic.Bool
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != config.DefaultModulesPath {
			http.NotFound(w, r)
			return
		}
		if !empty.Load() {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer dev.Close()

	base, stop := startServe(t, dashboardConfig(dev.URL))
	defer stop()

	eventually(t, "fail-open availability", func() (bool, string) {
		code, body := get(t, base+"/api/availability")
		return code == http.StatusOK && strings.Contains(body, `"source":"fail-open"`), body
	})

	_, header := get(t, base+"/includes/header.html?path=/")
	if !strings.Contains(header, `id="nav-sensors">`) {
		t.Fatalf("sensors group should be visible on fail-open:\n%s", header)
	}
	if !strings.Contains(header, `<li><a class="dropdown-link" id="scd30-nav-link"`) {
		t.Fatalf("specific entry should be visible on fail-open:\n%s", header)
	}

	empty.Store(true)

	eventually(t, "sensors group hidden", func() (bool, string) {
		_, body := get(t, base+"/includes/header.html?path=/")
		return strings.Contains(body, `id="nav-sensors" style="display:none">`), body
	})
}

func TestServe_HealthWhileExportDown(t *testing.T) {
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["SCD30"]`))
	}))
	defer dev.Close()

	base, stop := startServe(t, dashboardConfig(dev.URL))
	defer stop()

	eventually(t, "device availability", func() (bool, string) {
		code, body := get(t, base+"/api/availability")
		return code == http.StatusOK && strings.Contains(body, `"specific_available":true`) &&
			!strings.Contains(body, `"source":"fail-open"`), body
	})

	// Several export attempts have failed by now; the service keeps serving.
	time.Sleep(150 * time.Millisecond)

	code, body := get(t, base+"/health")
	if code != http.StatusOK || strings.TrimSpace(body) != "OK" {
		t.Fatalf("health: code=%d body=%q", code, body)
	}
}

func TestRun_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	cfg := dashboardConfig("http://127.0.0.1:1")
	cfg.Dashboard.Listen = ln.Addr().String()

	if err := run(context.Background(), cfg); err == nil {
		t.Fatalf("expected listen error on a taken port")
	}
}
