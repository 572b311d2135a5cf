// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dutybot/dutybot/models"
)

func sampleSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Config: models.Settings{DayStartHour: 5, ChannelTarget: "group@g.us"},
		Members: map[string]*models.Member{
			"a@c.us": {ID: "a@c.us", DisplayName: "Alice"},
		},
		Picks: map[string]*models.Pick{
			"2025-03-10": {MemberID: "a@c.us", SubmissionIDs: []string{"s1"}},
		},
		Submissions: map[string]*models.Submission{
			"s1": {
				ID:        "s1",
				AuthorID:  "a@c.us",
				MediaKind: models.MediaVideo,
				CreatedAt: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
				DayKey:    "2025-03-10",
				Outcome:   models.OutcomeOpen,
			},
		},
		Streaks:       map[string]*models.Streak{"a@c.us": {CurrentLength: 3, LastCreditedDayKey: "2025-03-09"}},
		Announcements: map[string]string{"msg-1": "s1"},
	}
}

func assertSample(t *testing.T, snap *models.Snapshot) {
	t.Helper()
	if snap.Config.DayStartHour != 5 {
		t.Errorf("config lost: %+v", snap.Config)
	}
	if snap.Picks["2025-03-10"] == nil || snap.Picks["2025-03-10"].MemberID != "a@c.us" {
		t.Errorf("pick lost: %+v", snap.Picks)
	}
	if snap.Submissions["s1"] == nil || snap.Submissions["s1"].MediaKind != models.MediaVideo {
		t.Errorf("submission lost: %+v", snap.Submissions)
	}
	if snap.Streaks["a@c.us"] == nil || snap.Streaks["a@c.us"].CurrentLength != 3 {
		t.Errorf("streak lost: %+v", snap.Streaks)
	}
	if snap.Announcements["msg-1"] != "s1" {
		t.Errorf("announcement mapping lost: %+v", snap.Announcements)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	fs := NewFileStore(path)

	if _, err := fs.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on first load, got %v", err)
	}

	if err := fs.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	snap, err := fs.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	assertSample(t, snap)

	// Save again to exercise the replace path
	snap.Config.DayStartHour = 6
	if err := fs.Save(snap); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	again, err := fs.Load()
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if again.Config.DayStartHour != 6 {
		t.Errorf("expected rewritten document, got hour %d", again.Config.DayStartHour)
	}
}

func TestSQLStore_SQLiteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	st, err := OpenSQL("sqlite", path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer st.Close()

	if _, err := st.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on empty table, got %v", err)
	}

	if err := st.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	snap, err := st.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	assertSample(t, snap)

	// Upsert must replace, not accumulate rows
	snap.Config.ChannelTarget = "other@g.us"
	if err := st.Save(snap); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	again, err := st.Load()
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if again.Config.ChannelTarget != "other@g.us" {
		t.Errorf("expected replaced document, got %q", again.Config.ChannelTarget)
	}
}

func TestOpen_UnknownType(t *testing.T) {
	if _, err := Open("mongodb", "whatever"); err == nil {
		t.Fatal("expected error for unknown database type")
	}
}
