// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: connection string or snapshot file path (required)
  - DatabaseType: file, sqlite or postgres (default: sqlite)
  - WebhookURL: outbound messaging webhook base URL (required)
  - WebhookToken: shared bearer token for both webhook directions
  - GroupID: group id used for roster sync
  - ChannelTarget: announcement target (defaults to GroupID)
  - DayStartHour: hour where the duty day begins (default: 5)

# CLI Flags

	-p             Server port
	-d             Database URL or file path
	-t             Database type
	-webhook-url   Outbound webhook base URL
	-webhook-token Webhook bearer token
	-group         Group id
	-channel       Announcement channel target
	-day-start     Day start hour (0-23)

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	WEBHOOK_URL    → -webhook-url
	WEBHOOK_TOKEN  → -webhook-token
	GROUP_ID       → -group
	CHANNEL_TARGET → -channel
	DAY_START_HOUR → -day-start

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - WEBHOOK_URL must be provided
  - a channel target must resolve (CHANNEL_TARGET or GROUP_ID)
  - DAY_START_HOUR must be within 0-23

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	str, err := store.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(b, cfg)
*/
package cliparse
