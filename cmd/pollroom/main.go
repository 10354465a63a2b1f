package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"pollroom/internal/config"
	"pollroom/internal/domain"
	"pollroom/internal/session"
	"pollroom/internal/timer"
	"pollroom/internal/transport/ws"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set up logger
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	role, err := domain.ParseRole(cfg.Session.Role)
	if err != nil {
		logger.Error("invalid role", "error", err)
		os.Exit(1)
	}

	logger.Info("starting poll session client",
		"role", role,
		"name", cfg.Session.DisplayName,
		"server", cfg.Server.URL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	anchor := timer.New(clockwork.NewRealClock(), func(remaining int) {
		logger.Debug("countdown", "timeLeft", remaining)
	})
	machine := session.NewMachine(role, anchor, logger)
	queue := session.NewQueue(machine, logger)
	defer queue.Close()

	machine.OnServerError(func(message string) {
		logger.Warn("server error surfaced to user", "message", message)
	})

	// A kick ends the session for good; the transition triggers the
	// transport disconnect, not the reverse.
	kicked := make(chan struct{})
	var kickOnce sync.Once
	machine.OnTransition(func(from, to domain.Phase) {
		if to == domain.PhaseKickedOut {
			kickOnce.Do(func() { close(kicked) })
		}
	})

	delay := cfg.Session.ReconnectMinDelay
	for ctx.Err() == nil {
		dialCtx, cancel := context.WithTimeout(ctx, cfg.Server.DialTimeout)
		client, err := ws.Dial(dialCtx, cfg.Server.URL, queue, logger)
		cancel()
		if err != nil {
			logger.Warn("connection failed", "error", err, "retryIn", delay)
			select {
			case <-ctx.Done():
			case <-time.After(delay):
			}
			delay = min(delay*2, cfg.Session.ReconnectMaxDelay)
			continue
		}

		delay = cfg.Session.ReconnectMinDelay
		machine.AttachEmitter(client)

		if err := queue.Dispatch(domain.RegisterClient{
			Role:        role,
			DisplayName: cfg.Session.DisplayName,
		}); err != nil {
			logger.Error("registration failed", "error", err)
		}

		connDone := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				client.Close()
			case <-kicked:
				client.Close()
			case <-connDone:
			}
		}()

		client.Run()
		close(connDone)

		select {
		case <-kicked:
			logger.Info("removed from session, shutting down")
			return
		default:
		}
		logger.Info("disconnected, reconnecting", "retryIn", delay)
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}

	logger.Info("client stopped")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
