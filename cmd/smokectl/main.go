package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"smokefree/internal/device/config"
	"smokefree/internal/device/coordinator"
	"smokefree/internal/device/localcache"
	"smokefree/internal/device/remote"
)

const usage = `usage: smokectl [-config path] <command> [args]

commands:
  settings show
  settings set [-wake HH:MM] [-sleep HH:MM] [-goal N] [-lang de|en] [-bg gray|black]
  day setup [YYYY-MM-DD]
  smoke
  today
  alarms [YYYY-MM-DD]
  stats [-days N]
  promo <code>
  status
`

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "device config path (optional)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smokectl: %v\n", err)
		return 1
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	local, err := localcache.New(cfg.CachePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smokectl: open cache: %v\n", err)
		return 1
	}
	defer local.Close()

	deviceID, err := local.DeviceID()
	if err != nil {
		fmt.Fprintf(os.Stderr, "smokectl: device id: %v\n", err)
		return 1
	}

	client, err := remote.NewClient(cfg.APIURL, cfg.RequestTimeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "smokectl: %v\n", err)
		return 1
	}

	coord := coordinator.New(local, client, coordinator.Options{
		DeviceID:        deviceID,
		RequestTimeout:  cfg.RequestTimeout,
		StatsWindowDays: cfg.StatsWindowDays,
	}, log)
	defer coord.Wait()

	cli := &cli{coord: coord, out: os.Stdout}
	if err := cli.dispatch(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "smokectl: %v\n", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
			return 2
		}
		return 1
	}
	return 0
}
