// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the dutybot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(b, cfg)

# Endpoints

Health:

	GET /health

Inbound messages (requires the shared bearer token):

	POST /channel/messages - Normalized inbound event from the gateway

The body is a channel.Message; a valid event returns 202 immediately,
the bot processes it synchronously before responding.

Cycle state:

	GET /status - Roster size, today's pick, active admin

# Authentication

Only the inbound message endpoint is guarded; it carries the same
shared token the outbound webhook sender uses. Health and status are
open for monitoring.
*/
package router
