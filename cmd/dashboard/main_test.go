// cmd/dashboard/main_test.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/tamzrod/sensor-dashboard/internal/availability"
	"github.com/tamzrod/sensor-dashboard/internal/config"
)

func writeConfig(t *testing.T, baseURL, cacheFile string) string {
	t.Helper()
	t.Setenv(config.EnvDeviceURL, "")
	t.Setenv(config.EnvListen, "")
	t.Setenv(config.EnvCacheFile, "")

	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	body := fmt.Sprintf(`
dashboard:
  device:
    base_url: %s
  availability:
    cache_file: %s
`, baseURL, cacheFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestCLI_ParsesCommands(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"run", "dashboard.yaml"}, "run <config>"},
		{[]string{"check", "dashboard.yaml"}, "check <config>"},
		{[]string{"clear-cache", "dashboard.yaml"}, "clear-cache <config>"},
	}

	for _, tc := range cases {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		kctx, err := k.Parse(tc.args)
		if err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if kctx.Command() != tc.want {
			t.Errorf("got command %q, want %q", kctx.Command(), tc.want)
		}
	}
}

func TestCLI_NoArgsErrors(t *testing.T) {
	var cli CLI
	k, err := kong.New(&cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := k.Parse([]string{}); err == nil {
		t.Fatal("expected error when no command provided")
	}
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "http://hid.local/", ""))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Dashboard.Device.BaseURL != "http://hid.local" {
		t.Fatalf("base_url not normalized: %q", cfg.Dashboard.Device.BaseURL)
	}
	if cfg.Dashboard.Availability.SpecificModule != config.DefaultSpecificModule {
		t.Fatalf("specific_module default missing: %q", cfg.Dashboard.Availability.SpecificModule)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	if _, err := loadConfig(writeConfig(t, "ftp://hid.local", "")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestChecker_CachesAcrossProcesses(t *testing.T) {
	var hits atomic.Int32
	dev := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != config.DefaultModulesPath {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(`["SCD30","BME280"]`))
	}))
	defer dev.Close()

	cacheFile := filepath.Join(t.TempDir(), "availability.json")
	cfgPath := writeConfig(t, dev.URL, cacheFile)
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	first, err := buildChecker(cfg)
	if err != nil {
		t.Fatalf("buildChecker: %v", err)
	}
	res := first.Check(context.Background())
	if res.Source != availability.SourceRemote || !res.Snapshot.SpecificAvailable {
		t.Fatalf("first check: %+v", res)
	}

	// A fresh checker over the same cache file answers from cache.
	second, _ := buildChecker(cfg)
	if res := second.Check(context.Background()); res.Source != availability.SourceCache {
		t.Fatalf("second check source=%s", res.Source)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("device hits=%d, want 1", n)
	}

	if err := (&ClearCacheCmd{Config: cfgPath}).Run(); err != nil {
		t.Fatalf("clear-cache: %v", err)
	}
	if res := second.Check(context.Background()); res.Source != availability.SourceRemote {
		t.Fatalf("after clear source=%s", res.Source)
	}
	if n := hits.Load(); n != 2 {
		t.Fatalf("device hits=%d, want 2", n)
	}
}
