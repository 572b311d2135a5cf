// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dutybot/dutybot/models"
)

func TestUpsertMember_Overwrites(t *testing.T) {
	s := New(models.Settings{DayStartHour: 5})

	s.UpsertMember("111@c.us", "Alice")
	s.UpsertMember("111@c.us", "Alicia")

	members := s.Members()
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].DisplayName != "Alicia" {
		t.Errorf("expected re-add to overwrite name, got %q", members[0].DisplayName)
	}
}

func TestSyncMembers_AdditiveOnly(t *testing.T) {
	s := New(models.Settings{})
	s.UpsertMember("111@c.us", "Alice")

	added := s.SyncMembers([]string{"111@c.us", "222@c.us"})
	if added != 1 {
		t.Errorf("expected 1 added, got %d", added)
	}
	if got := s.MemberName("111@c.us"); got != "Alice" {
		t.Errorf("sync must not touch existing members, got name %q", got)
	}
	if got := s.MemberName("222@c.us"); got != "222" {
		t.Errorf("expected default name derived from id, got %q", got)
	}

	// A later sync missing a known member must not remove them
	s.SyncMembers([]string{"222@c.us"})
	if len(s.Members()) != 2 {
		t.Errorf("sync removed a member; roster size %d", len(s.Members()))
	}
}

func TestAnnouncementBinding(t *testing.T) {
	s := New(models.Settings{})
	sub := &models.Submission{ID: "s1", AuthorID: "a", Outcome: models.OutcomeOpen}
	s.AddSubmission(sub)

	s.BindAnnouncement("msg-42", "s1")

	got := s.SubmissionByAnnouncement("msg-42")
	if got == nil || got.ID != "s1" {
		t.Fatalf("expected to resolve s1, got %+v", got)
	}
	if sub.AnnouncementID != "msg-42" {
		t.Errorf("announcement id not stamped onto submission: %q", sub.AnnouncementID)
	}
	if s.SubmissionByAnnouncement("unknown") != nil {
		t.Error("unknown announcement id should resolve to nil")
	}
}

func TestLatestSubmission_AppendOrder(t *testing.T) {
	s := New(models.Settings{})
	s.SetPick("2025-03-10", "a")
	for _, id := range []string{"s1", "s2", "s3"} {
		s.AddSubmission(&models.Submission{ID: id, AuthorID: "a"})
		s.AppendToPick("2025-03-10", id)
	}

	if got := s.LatestSubmission("2025-03-10"); got == nil || got.ID != "s3" {
		t.Errorf("expected latest s3, got %+v", got)
	}
	if s.LatestSubmission("2025-03-11") != nil {
		t.Error("day without pick should have no latest submission")
	}
}

func TestActiveAdmin_SingletonAndLazyExpiry(t *testing.T) {
	s := New(models.Settings{})
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	s.SetAdmin("old", now.Add(models.AdminTenure))
	s.SetAdmin("new", now.Add(models.AdminTenure))

	a := s.ActiveAdmin(now)
	if a == nil || a.MemberID != "new" {
		t.Fatalf("replacement must fully supersede the first assignment, got %+v", a)
	}

	if s.ActiveAdmin(now.Add(models.AdminTenure)) != nil {
		t.Error("assignment should lapse at expiry instant")
	}
	if s.ActiveAdmin(now.Add(models.AdminTenure-time.Second)) == nil {
		t.Error("assignment should still be active just before expiry")
	}
}

func TestTopStreaks(t *testing.T) {
	s := New(models.Settings{})
	s.UpsertMember("a", "Alice")
	s.UpsertMember("b", "Bob")
	s.UpsertMember("c", "Cara")
	s.SetStreak("a", models.Streak{CurrentLength: 2, LastCreditedDayKey: "2025-03-10"})
	s.SetStreak("b", models.Streak{CurrentLength: 7, LastCreditedDayKey: "2025-03-10"})
	s.SetStreak("c", models.Streak{CurrentLength: 0, LastCreditedDayKey: "2025-03-01"})

	top := s.TopStreaks(10)
	if len(top) != 2 {
		t.Fatalf("zero-length streaks must be skipped; got %d entries", len(top))
	}
	if top[0].Member.ID != "b" || top[1].Member.ID != "a" {
		t.Errorf("expected order b,a got %s,%s", top[0].Member.ID, top[1].Member.ID)
	}

	if got := s.TopStreaks(1); len(got) != 1 || got[0].Member.ID != "b" {
		t.Errorf("expected truncation to top 1 (b), got %+v", got)
	}
}

func TestFromSnapshot_RoundTripAndNilMaps(t *testing.T) {
	s := New(models.Settings{DayStartHour: 5, ChannelTarget: "group@g.us"})
	s.UpsertMember("a", "Alice")
	s.SetPick("2025-03-10", "a")
	s.AddSubmission(&models.Submission{ID: "s1", AuthorID: "a", Outcome: models.OutcomeOpen})
	s.AppendToPick("2025-03-10", "s1")

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored := FromSnapshot(&snap)
	if restored.Pick("2025-03-10") == nil {
		t.Error("pick lost in round trip")
	}
	if restored.Settings().DayStartHour != 5 {
		t.Error("settings lost in round trip")
	}

	// Older documents may lack maps entirely
	sparse := FromSnapshot(&models.Snapshot{})
	sparse.UpsertMember("x", "") // must not panic on nil map
	if sparse.MemberName("x") != "x" {
		t.Errorf("expected default name for empty name upsert")
	}
}
