// Command shogunctl boots the shogun kernel core standalone, runs the
// executor for a fixed duration, and prints the resulting metrics
// snapshot. By default it drives hwio.NewFake() so it runs anywhere;
// pass -real to drive actual port I/O and privileged instructions via
// the cgo backend (requires linux/amd64, cgo, and CAP_SYS_RAWIO).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SarthakRawat-1/shogun-os"
	"github.com/SarthakRawat-1/shogun-os/internal/hwio"
	"github.com/SarthakRawat-1/shogun-os/internal/logging"
)

func main() {
	var (
		arenaStr = flag.String("arena", "1M", "Size of the heap arena (e.g. 64K, 1M)")
		runFor   = flag.Duration("run-for", 2*time.Second, "How long to drive the executor before reporting metrics")
		verbose  = flag.Bool("v", false, "Verbose output")
		real     = flag.Bool("real", false, "Drive real port I/O and privileged instructions instead of the fake backend")
	)
	flag.Parse()

	arenaSize, err := parseSize(*arenaStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "shogunctl: invalid -arena %q: %v\n", *arenaStr, err)
		os.Exit(1)
	}

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(logConfig)
	logging.SetDefault(logger)

	var hw hwio.Hardware
	if *real {
		hw, err = hwio.NewReal()
		if err != nil {
			wrapped := shogun.WrapError("hwio.real", err)
			logger.Error("failed to acquire real hardware backend", "error", wrapped, "errno", wrapped.Errno)
			os.Exit(1)
		}
	} else {
		hw = shogun.NewFakeHardware()
	}

	logger.Info("booting kernel core", "arena_bytes", arenaSize, "real", *real)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	k, err := shogun.Boot(ctx, shogun.Config{
		Hardware: hw,
		Arena:    make([]byte, arenaSize),
		Logger:   logger,
	})
	if err != nil {
		logger.Error("boot failed", "error", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	runCtx, runCancel := context.WithTimeout(ctx, *runFor)
	defer runCancel()

	logger.Info("running executor", "duration", runFor.String())
	k.Run(runCtx)

	snap := k.Metrics.Snapshot()
	fmt.Printf("ticks:           %d\n", snap.Ticks)
	fmt.Printf("tasks spawned:   %d\n", snap.TasksSpawned)
	fmt.Printf("tasks completed: %d\n", snap.TasksCompleted)
	fmt.Printf("allocations:     %d\n", snap.Allocations)
	fmt.Printf("deallocations:   %d\n", snap.Deallocations)
	fmt.Printf("bytes in use:    %d\n", snap.BytesInUse)
	fmt.Printf("log pushes:      %d\n", snap.LogPushes)
	fmt.Printf("log drops:       %d\n", snap.LogDrops)
	fmt.Printf("uptime:          %s\n", time.Duration(snap.UptimeNs))
}

// parseSize parses a size string like "64K", "1M", "512".
func parseSize(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}
	multiplier := int64(1)
	numStr := s
	switch s[len(s)-1] {
	case 'K', 'k':
		multiplier = 1024
		numStr = s[:len(s)-1]
	case 'M', 'm':
		multiplier = 1024 * 1024
		numStr = s[:len(s)-1]
	case 'G', 'g':
		multiplier = 1024 * 1024 * 1024
		numStr = s[:len(s)-1]
	}
	var num int64
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return 0, err
	}
	return num * multiplier, nil
}
