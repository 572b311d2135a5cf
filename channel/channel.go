// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package channel defines the messaging collaborator the core talks to.
// The core never parses transport envelopes; it consumes normalized
// Messages and sends text through a Sender, treating delivery as
// fire-and-forget.
package channel

// Message is a normalized inbound event from the messaging transport.
type Message struct {
	SenderID        string `json:"sender_id"`
	ChatID          string `json:"chat_id"`
	Text            string `json:"text,omitempty"`
	Media           string `json:"media,omitempty"` // "video" or "voice", empty for text-only
	QuotedMessageID string `json:"quoted_message_id,omitempty"`
}

// Sender delivers an outbound message and returns the transport's id for
// it, which the ledger stores for vote-reply mapping.
type Sender interface {
	Send(target, text string, mentions []string) (string, error)
}

// Roster fetches group membership from the transport.
type Roster interface {
	FetchGroupMembers(groupID string) ([]string, error)
}
