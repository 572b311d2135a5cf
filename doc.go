// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dutybot server.

Dutybot runs a daily "on duty" rotation for a chat group: every day one
member is randomly picked to send a video or voice recording, the group
votes on it by replying approve or reject, approvals extend the member's
streak, and the member whose rejecting vote closes a submission becomes
temporary group admin.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:duty.db WEBHOOK_URL=http://gateway:8080 GROUP_ID=g@g.us go run main.go

Or with flags:

	go run main.go -p 3319 -d "file:duty.db" -webhook-url "http://gateway:8080" -group "g@g.us"

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string or snapshot file path
  - WEBHOOK_URL (-webhook-url): outbound messaging gateway base URL
  - CHANNEL_TARGET (-channel) or GROUP_ID (-group): announcement target

Optional settings:

  - PORT (-p): server port (default: 3319)
  - DATABASE_TYPE (-t): file, sqlite or postgres (default: sqlite)
  - WEBHOOK_TOKEN (-webhook-token): shared bearer token
  - DAY_START_HOUR (-day-start): duty day boundary (default: 5)

# Architecture

The server keeps all rotation state in one snapshot document and runs
every event to completion under a single lock:

  - bot: event loop, command surface, daily trigger, announcements
  - duty: pick cycle, submission ledger, voting, streaks and admin
  - state: snapshot accessors and invariant-preserving mutations
  - dayclock: duty day windows and day keys
  - store: snapshot persistence (file, sqlite or postgres)
  - channel: webhook messaging transport
  - router: HTTP surface using Go 1.22+ routing
  - middleware: token guard, logging, JSON helpers
  - models: snapshot and wire types
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
