// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dutybot/dutybot/models"
	"github.com/dutybot/dutybot/state"
	"github.com/dutybot/dutybot/store"
)

// NewTestState builds an isolated state with the given roster. Members are
// added in the given order; ids double as display names unless a name is
// supplied as "id=Name".
func NewTestState(t *testing.T, dayStartHour int, memberIDs ...string) *state.State {
	t.Helper()
	st := state.New(models.Settings{
		DayStartHour:  dayStartHour,
		ChannelTarget: "group@g.us",
		GroupID:       "group@g.us",
	})
	for _, id := range memberIDs {
		st.UpsertMember(id, "")
	}
	return st
}

// At returns a deterministic timestamp: day days after the 2025-03-10 base
// date, at the given hour.
func At(day, hour int) time.Time {
	return time.Date(2025, 3, 10+day, hour, 0, 0, 0, time.UTC)
}

// ScriptedRand returns the scripted values in order (modulo n), then zeros.
type ScriptedRand struct {
	Values []int
	next   int
}

func (r *ScriptedRand) Intn(n int) int {
	if r.next >= len(r.Values) {
		return 0
	}
	v := r.Values[r.next] % n
	r.next++
	return v
}

// SentMessage records one outbound send.
type SentMessage struct {
	Target   string
	Text     string
	Mentions []string
}

// FakeSender records sends and can be told to fail for specific targets,
// to exercise the direct-notification degradation path.
type FakeSender struct {
	Sent        []SentMessage
	FailTargets map[string]bool
	nextID      int
}

func (f *FakeSender) Send(target, text string, mentions []string) (string, error) {
	if f.FailTargets[target] {
		return "", errors.New("target unreachable")
	}
	f.nextID++
	f.Sent = append(f.Sent, SentMessage{Target: target, Text: text, Mentions: mentions})
	return fmt.Sprintf("ann-%d", f.nextID), nil
}

// LastTo returns the most recent message sent to target, or nil.
func (f *FakeSender) LastTo(target string) *SentMessage {
	for i := len(f.Sent) - 1; i >= 0; i-- {
		if f.Sent[i].Target == target {
			return &f.Sent[i]
		}
	}
	return nil
}

// FakeRoster serves a fixed membership list.
type FakeRoster struct {
	IDs []string
	Err error
}

func (f *FakeRoster) FetchGroupMembers(groupID string) ([]string, error) {
	return f.IDs, f.Err
}

// MemStore is an in-memory store.Store for bot tests. SaveCount lets tests
// assert the persist-before-notify ordering happened at all.
type MemStore struct {
	Snap      *models.Snapshot
	SaveCount int
	FailSaves bool
}

func (m *MemStore) Load() (*models.Snapshot, error) {
	if m.Snap == nil {
		return nil, store.ErrNoSnapshot
	}
	return m.Snap, nil
}

func (m *MemStore) Save(snap *models.Snapshot) error {
	if m.FailSaves {
		return errors.New("disk full")
	}
	m.SaveCount++
	m.Snap = snap
	return nil
}

func (m *MemStore) Close() error { return nil }
