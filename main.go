package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dutybot/dutybot/bot"
	"github.com/dutybot/dutybot/channel"
	"github.com/dutybot/dutybot/cliparse"
	"github.com/dutybot/dutybot/models"
	"github.com/dutybot/dutybot/router"
	"github.com/dutybot/dutybot/state"
	"github.com/dutybot/dutybot/store"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open snapshot storage
	str, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("storage open failed", "error", err)
		os.Exit(1)
	}
	defer str.Close()

	// Load the last snapshot, or start fresh
	var st *state.State
	snap, err := str.Load()
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		slog.Info("no snapshot found, starting fresh")
		st = state.New(models.Settings{
			DayStartHour:  cfg.DayStartHour,
			ChannelTarget: cfg.ChannelTarget,
			GroupID:       cfg.GroupID,
		})
	case err != nil:
		slog.Error("snapshot load failed", "error", err)
		os.Exit(1)
	default:
		st = state.FromSnapshot(snap)
		slog.Info("snapshot loaded", "members", len(snap.Members), "submissions", len(snap.Submissions))
	}

	// Messaging transport
	webhook := channel.NewWebhookChannel(cfg.WebhookURL, cfg.WebhookToken)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	b := bot.New(st, str, webhook, webhook, rnd)

	// Daily trigger runs until shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go b.RunDailyTrigger(ctx)

	// Create router
	mux := router.NewRouter(b, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
