// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// WebhookChannel talks to the messaging transport over HTTP: outbound
// messages are POSTed to {base}/messages and group membership is read from
// {base}/groups/{id}/members. It implements both Sender and Roster.
type WebhookChannel struct {
	base   string
	token  string
	client *http.Client
}

func NewWebhookChannel(baseURL, token string) *WebhookChannel {
	return &WebhookChannel{
		base:   baseURL,
		token:  token,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	Target   string   `json:"target"`
	Text     string   `json:"text"`
	Mentions []string `json:"mentions,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
}

// Send posts the message and returns the transport's message id. If the
// transport answers without one, a locally generated id is used so the
// announcement can still be tracked.
func (w *WebhookChannel) Send(target, text string, mentions []string) (string, error) {
	body, err := json.Marshal(sendRequest{Target: target, Text: text, Mentions: mentions})
	if err != nil {
		return "", fmt.Errorf("failed to encode send request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.base+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("send failed: transport returned %s", resp.Status)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.MessageID == "" {
		return uuid.NewString(), nil
	}
	return out.MessageID, nil
}

type membersResponse struct {
	MemberIDs []string `json:"member_ids"`
}

// FetchGroupMembers reads the current membership of a group.
func (w *WebhookChannel) FetchGroupMembers(groupID string) ([]string, error) {
	req, err := http.NewRequest(http.MethodGet,
		w.base+"/groups/"+url.PathEscape(groupID)+"/members", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build members request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.token)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group members: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch group members: transport returned %s", resp.Status)
	}

	var out membersResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode members response: %w", err)
	}
	return out.MemberIDs, nil
}
