// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"sort"
	"strings"
	"time"

	"github.com/dutybot/dutybot/models"
)

// State owns the mutable snapshot. All mutation goes through accessor
// methods so tests can build isolated instances; nothing here touches
// storage or the channel.
type State struct {
	snap *models.Snapshot
}

// New returns an empty state seeded with the given settings.
func New(cfg models.Settings) *State {
	return &State{snap: &models.Snapshot{
		Config:        cfg,
		Members:       make(map[string]*models.Member),
		Picks:         make(map[string]*models.Pick),
		Submissions:   make(map[string]*models.Submission),
		Streaks:       make(map[string]*models.Streak),
		Announcements: make(map[string]string),
	}}
}

// FromSnapshot wraps a loaded snapshot, filling in any nil maps so older
// documents stay loadable.
func FromSnapshot(snap *models.Snapshot) *State {
	if snap.Members == nil {
		snap.Members = make(map[string]*models.Member)
	}
	if snap.Picks == nil {
		snap.Picks = make(map[string]*models.Pick)
	}
	if snap.Submissions == nil {
		snap.Submissions = make(map[string]*models.Submission)
	}
	if snap.Streaks == nil {
		snap.Streaks = make(map[string]*models.Streak)
	}
	if snap.Announcements == nil {
		snap.Announcements = make(map[string]string)
	}
	return &State{snap: snap}
}

// Snapshot exposes the underlying document for persistence.
func (s *State) Snapshot() *models.Snapshot {
	return s.snap
}

// Settings

func (s *State) Settings() models.Settings {
	return s.snap.Config
}

func (s *State) SetDayStartHour(h int) {
	s.snap.Config.DayStartHour = h
}

func (s *State) SetChannelTarget(target string) {
	s.snap.Config.ChannelTarget = target
}

// Roster

// UpsertMember adds or renames a member. Re-adding overwrites the name;
// members are never removed.
func (s *State) UpsertMember(id, name string) {
	if name == "" {
		name = DefaultName(id)
	}
	s.snap.Members[id] = &models.Member{ID: id, DisplayName: name}
}

// SyncMembers inserts every id not already present, with a default display
// name derived from the id. Existing members are untouched and absentees
// are never removed: removal could orphan historical streak and pick
// records. Returns the number of members added.
func (s *State) SyncMembers(ids []string) int {
	added := 0
	for _, id := range ids {
		if _, ok := s.snap.Members[id]; ok {
			continue
		}
		s.snap.Members[id] = &models.Member{ID: id, DisplayName: DefaultName(id)}
		added++
	}
	return added
}

// Members returns a snapshot of the roster, sorted by id for determinism.
func (s *State) Members() []models.Member {
	out := make([]models.Member, 0, len(s.snap.Members))
	for _, m := range s.snap.Members {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MemberName resolves a display name, falling back to a name derived from
// the id for senders not on the roster.
func (s *State) MemberName(id string) string {
	if m, ok := s.snap.Members[id]; ok {
		return m.DisplayName
	}
	return DefaultName(id)
}

// DefaultName derives a readable display name from an opaque chat id by
// stripping everything from the first '@' (e.g. "5511999@c.us" -> "5511999").
func DefaultName(id string) string {
	if i := strings.IndexByte(id, '@'); i > 0 {
		return id[:i]
	}
	return id
}

// Picks

func (s *State) Pick(dayKey string) *models.Pick {
	return s.snap.Picks[dayKey]
}

// SetPick records the pick for a day key, replacing any existing one (the
// manual-pick overwrite is the only caller that replaces).
func (s *State) SetPick(dayKey, memberID string) *models.Pick {
	p := &models.Pick{MemberID: memberID, SubmissionIDs: []string{}}
	s.snap.Picks[dayKey] = p
	return p
}

// AppendToPick binds a submission id to the pick of the given day key.
func (s *State) AppendToPick(dayKey, submissionID string) {
	if p := s.snap.Picks[dayKey]; p != nil {
		p.SubmissionIDs = append(p.SubmissionIDs, submissionID)
	}
}

// SetRecordingMode fixes the pick's recording mode if one exists for the
// day key.
func (s *State) SetRecordingMode(dayKey, mode string) {
	if p := s.snap.Picks[dayKey]; p != nil {
		p.RecordingMode = mode
	}
}

// Submissions

func (s *State) AddSubmission(sub *models.Submission) {
	s.snap.Submissions[sub.ID] = sub
}

func (s *State) Submission(id string) *models.Submission {
	return s.snap.Submissions[id]
}

// BindAnnouncement records the announcement-id -> submission-id mapping
// used to resolve vote replies, and stamps the id onto the submission.
func (s *State) BindAnnouncement(announcementID, submissionID string) {
	sub := s.snap.Submissions[submissionID]
	if sub == nil || announcementID == "" {
		return
	}
	sub.AnnouncementID = announcementID
	s.snap.Announcements[announcementID] = submissionID
}

// SubmissionByAnnouncement resolves a quoted announcement id, or nil.
func (s *State) SubmissionByAnnouncement(announcementID string) *models.Submission {
	id, ok := s.snap.Announcements[announcementID]
	if !ok {
		return nil
	}
	return s.snap.Submissions[id]
}

// LatestSubmission returns the most recently created submission bound to
// the pick for dayKey, or nil. Pick lists are append-ordered, so the last
// entry is the newest.
func (s *State) LatestSubmission(dayKey string) *models.Submission {
	p := s.snap.Picks[dayKey]
	if p == nil || len(p.SubmissionIDs) == 0 {
		return nil
	}
	return s.snap.Submissions[p.SubmissionIDs[len(p.SubmissionIDs)-1]]
}

// Streaks

// Streak returns the member's streak, zero-valued if none exists yet.
func (s *State) Streak(memberID string) models.Streak {
	if st := s.snap.Streaks[memberID]; st != nil {
		return *st
	}
	return models.Streak{}
}

func (s *State) SetStreak(memberID string, st models.Streak) {
	s.snap.Streaks[memberID] = &st
}

// StreakEntry pairs a member with their streak for leaderboard output.
type StreakEntry struct {
	Member models.Member
	Streak models.Streak
}

// TopStreaks returns up to n members ordered by current streak length,
// descending. Zero-length streaks are skipped; ties are unordered beyond
// the id tiebreak that keeps output stable.
func (s *State) TopStreaks(n int) []StreakEntry {
	var entries []StreakEntry
	for id, st := range s.snap.Streaks {
		if st.CurrentLength <= 0 {
			continue
		}
		m := s.snap.Members[id]
		if m == nil {
			m = &models.Member{ID: id, DisplayName: DefaultName(id)}
		}
		entries = append(entries, StreakEntry{Member: *m, Streak: *st})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Streak.CurrentLength != entries[j].Streak.CurrentLength {
			return entries[i].Streak.CurrentLength > entries[j].Streak.CurrentLength
		}
		return entries[i].Member.ID < entries[j].Member.ID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Admin assignment

// SetAdmin replaces the singleton admin assignment.
func (s *State) SetAdmin(memberID string, expiresAt time.Time) *models.AdminAssignment {
	s.snap.Admin = &models.AdminAssignment{MemberID: memberID, ExpiresAt: expiresAt}
	return s.snap.Admin
}

// ActiveAdmin returns the current assignment if it has not lapsed. Expiry
// is evaluated here, lazily; nothing clears the field on a timer.
func (s *State) ActiveAdmin(now time.Time) *models.AdminAssignment {
	if s.snap.Admin == nil || !now.Before(s.snap.Admin.ExpiresAt) {
		return nil
	}
	return s.snap.Admin
}
