package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aashishh4323/Guard-X/pkg/console"
	"go.uber.org/zap"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8000", "Guard-X station base URL")
	interval := flag.Duration("interval", 5*time.Second, "Status poll interval")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	startMonitoring := flag.Bool("start-monitoring", false, "Activate backend monitoring on startup")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client := console.NewClient(*serverURL, *timeout)
	poller := console.NewStatusPoller(client, *interval, logger.Named("poller"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *startMonitoring {
		if err := poller.StartMonitoring(ctx); err != nil {
			logger.Warn("could not activate monitoring; continuing in observe mode", zap.Error(err))
		}
	}

	poller.Start(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-sigCh:
			logger.Info("received shutdown signal", zap.String("signal", sig.String()))
			poller.Stop()
			logger.Info("console stopped")
			return
		case <-ticker.C:
			doc := poller.Status()
			fields := []zap.Field{
				zap.String("threat_level", console.ComputeThreatLevel(doc)),
				zap.Bool("monitoring", doc.Monitoring),
				zap.Bool("jamming_detected", doc.JammingDetected),
				zap.String("channel", doc.CurrentChannel),
				zap.String("last_poll", poller.PollState().String()),
			}
			if dbm, ok := doc.SignalDBm(doc.CurrentChannel); ok {
				fields = append(fields, zap.Float64("signal_dbm", dbm))
			}
			if doc.NetworkHealth != nil {
				fields = append(fields, zap.Float64("packet_loss", doc.NetworkHealth.PacketLoss))
			}
			logger.Info("status", fields...)
		}
	}
}
