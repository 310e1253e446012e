// cmd/dashboard/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/tamzrod/sensor-dashboard/internal/config"
)

var version = "dev"

// CLI is the top-level command structure for dashboard.
type CLI struct {
	Version    kong.VersionFlag `help:"Show version." short:"V"`
	Run        RunCmd           `cmd:"" help:"Serve the dashboard and poll the device."`
	Check      CheckCmd         `cmd:"" help:"Run one availability check and print the result."`
	ClearCache ClearCacheCmd    `cmd:"" help:"Drop the cached availability snapshot."`
}

// RunCmd serves the dashboard until interrupted.
type RunCmd struct {
	Config string `arg:"" help:"Path to config YAML." type:"path"`
}

func (c *RunCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg)
}

// CheckCmd performs exactly one availability check.
type CheckCmd struct {
	Config string `arg:"" help:"Path to config YAML." type:"path"`
}

func (c *CheckCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	checker, err := buildChecker(cfg)
	if err != nil {
		return err
	}

	res := checker.Check(context.Background())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res.View())
}

// ClearCacheCmd removes the stored snapshot so the next check goes remote.
type ClearCacheCmd struct {
	Config string `arg:"" help:"Path to config YAML." type:"path"`
}

func (c *ClearCacheCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	checker, err := buildChecker(cfg)
	if err != nil {
		return err
	}
	if err := checker.ClearCache(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	fmt.Println("availability cache cleared")
	return nil
}

// loadConfig is Load, Validate, Normalize in that order.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dashboard"),
		kong.Description("Sensor dashboard companion service."),
		kong.Vars{"version": version},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
