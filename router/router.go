// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"strings"

	"github.com/dutybot/dutybot/bot"
	"github.com/dutybot/dutybot/channel"
	"github.com/dutybot/dutybot/cliparse"
	"github.com/dutybot/dutybot/middleware"
	"github.com/dutybot/dutybot/models"
)

func NewRouter(b *bot.Bot, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Inbound messages from the transport gateway
	mux.HandleFunc("POST /channel/messages",
		middleware.WithLogging(middleware.RequireToken(cfg.WebhookToken, func(w http.ResponseWriter, r *http.Request) {
			var msg channel.Message
			if err := middleware.ParseJSONBody(r, &msg); err != nil {
				middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
				return
			}
			if strings.TrimSpace(msg.SenderID) == "" {
				middleware.ErrorResponse(w, http.StatusBadRequest, "sender_id is required")
				return
			}
			b.HandleMessage(msg)
			middleware.JSONResponse(w, http.StatusAccepted, models.InboundAccepted{Accepted: true})
		})))

	// Cycle state for operators and monitoring
	mux.HandleFunc("GET /status", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, b.Status())
	}))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dutybot API v1"))
	})

	return mux
}
