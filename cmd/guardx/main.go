package main

//	@title			Guard-X Station API
//	@version		0.1.0
//	@description	Autonomous surveillance station API: anti-jamming monitor, drone fleet, alerts, mobile dashboard.
//	@BasePath		/api

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aashishh4323/Guard-X/api/swagger"
	"github.com/aashishh4323/Guard-X/internal/alerts"
	"github.com/aashishh4323/Guard-X/internal/cache"
	"github.com/aashishh4323/Guard-X/internal/config"
	"github.com/aashishh4323/Guard-X/internal/event"
	"github.com/aashishh4323/Guard-X/internal/fleet"
	"github.com/aashishh4323/Guard-X/internal/jamming"
	"github.com/aashishh4323/Guard-X/internal/mobile"
	"github.com/aashishh4323/Guard-X/internal/registry"
	"github.com/aashishh4323/Guard-X/internal/server"
	"github.com/aashishh4323/Guard-X/internal/version"
	"github.com/aashishh4323/Guard-X/internal/ws"
	"github.com/aashishh4323/Guard-X/pkg/plugin"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(version.Info())
		return
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Guard-X station starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	// Shared services.
	bus := event.NewBus(logger.Named("event"))
	reg := registry.New(logger.Named("registry"))

	// Register all modules (compile-time composition).
	modules := []plugin.Module{
		jamming.New(),
		fleet.New(),
		alerts.New(),
		cache.New(),
		mobile.New(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			logger.Fatal("failed to register module", zap.Error(err))
		}
	}

	if err := reg.Validate(); err != nil {
		logger.Fatal("module validation failed", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config:  cfg.Sub("modules." + name),
			Logger:  logger.Named(name),
			Bus:     bus,
			Modules: reg,
		}
	}); err != nil {
		logger.Fatal("failed to initialize modules", zap.Error(err))
	}

	if err := reg.StartAll(ctx); err != nil {
		logger.Fatal("failed to start modules", zap.Error(err))
	}

	// WebSocket handler for real-time security and fleet events.
	wsHandler := ws.NewHandler(bus, logger.Named("ws"))
	logger.Info("websocket handler initialized", zap.String("component", "ws"))

	// The legacy swarm detections route lives outside the module prefix.
	extraRoutes := []server.RouteRegistrar{wsHandler}
	for _, m := range modules {
		if f, ok := m.(*fleet.Module); ok {
			extraRoutes = append(extraRoutes, f)
		}
	}

	addr := viperCfg.GetString("server.host") + ":" + viperCfg.GetString("server.port")
	if addr == ":" {
		addr = "0.0.0.0:8000"
	}
	devMode := viperCfg.GetBool("server.dev_mode")
	srv := server.New(addr, reg, logger, nil, devMode, extraRoutes...)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Guard-X station ready", zap.String("addr", addr))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	reg.StopAll(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("Guard-X station stopped")
}
