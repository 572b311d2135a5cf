// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Token Guard

Protect the inbound webhook with the shared bearer token:

	mux.HandleFunc("POST /channel/messages",
		middleware.WithLogging(middleware.RequireToken(cfg.WebhookToken, handler)))

The comparison is constant-time; an empty configured token disables
the guard for local development.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var msg channel.Message
	if err := middleware.ParseJSONBody(r, &msg); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Used for the request log's remote field behind proxies.
*/
package middleware
