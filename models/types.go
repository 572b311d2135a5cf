package models

import "time"

// Media kinds accepted from the channel
const (
	MediaVideo = "video"
	MediaVoice = "voice"
)

// Submission outcome constants
const (
	OutcomeOpen     = "open"
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"
)

// Pick recording mode constants. A pick starts unset; the first on-cycle
// submission of the day fixes the mode.
const (
	ModeUnset = ""
	ModeVideo = MediaVideo
	ModeVoice = MediaVoice
)

// NoteOffCycle marks a submission whose author was not the day's pick.
// Off-cycle submissions are kept for audit but never enter voting.
const NoteOffCycle = "off-cycle"

// AdminTenure is how long a decisive rejecting voter holds the admin label.
const AdminTenure = 7 * 24 * time.Hour

// Domain types

type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Settings is the process-wide configuration carried inside the snapshot.
// It is seeded from flags/env on first run and mutated only by explicit
// operator commands, never by the cycle logic.
type Settings struct {
	DayStartHour  int    `json:"day_start_hour"`
	ChannelTarget string `json:"channel_target"`
	GroupID       string `json:"group_id,omitempty"`
}

// Pick is the on-duty assignment for one day key.
type Pick struct {
	MemberID      string   `json:"member_id"`
	SubmissionIDs []string `json:"submission_ids"`
	RecordingMode string   `json:"recording_mode,omitempty"`
}

// Vote is one voter's current verdict on a submission. Votes are stored in
// cast order; a re-vote removes the old entry and appends, so the last
// element with Approve=false is the decisive rejecting voter.
type Vote struct {
	VoterID string    `json:"voter_id"`
	Approve bool      `json:"approve"`
	CastAt  time.Time `json:"cast_at"`
}

type Submission struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	MediaKind      string    `json:"media_kind"`
	CreatedAt      time.Time `json:"created_at"`
	DayKey         string    `json:"day_key"`
	Votes          []Vote    `json:"votes,omitempty"`
	Finalized      bool      `json:"finalized"`
	Outcome        string    `json:"outcome"`
	AnnouncementID string    `json:"announcement_id,omitempty"`
	Note           string    `json:"note,omitempty"`
}

// Streak tracks consecutive credited days for one member. A rejection
// zeroes CurrentLength but leaves LastCreditedDayKey for audit.
type Streak struct {
	CurrentLength      int    `json:"current_length"`
	LastCreditedDayKey string `json:"last_credited_day_key,omitempty"`
}

// AdminAssignment is the singleton time-boxed admin label. Expiry is
// evaluated lazily by timestamp comparison; there is no expiry job.
type AdminAssignment struct {
	MemberID  string    `json:"member_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Snapshot is the single persisted JSON document. Every mutating operation
// rewrites it in full through the store.
type Snapshot struct {
	Config        Settings               `json:"config"`
	Members       map[string]*Member     `json:"members"`
	Picks         map[string]*Pick       `json:"picks"`
	Submissions   map[string]*Submission `json:"submissions"`
	Streaks       map[string]*Streak     `json:"streaks"`
	Admin         *AdminAssignment       `json:"admin,omitempty"`
	Announcements map[string]string      `json:"announcements"`
}

// Response types for the HTTP surface

type StatusResponse struct {
	RosterSize   int    `json:"roster_size"`
	TodayDayKey  string `json:"today_day_key"`
	PickMemberID string `json:"pick_member_id,omitempty"`
	PickName     string `json:"pick_name,omitempty"`
	AdminID      string `json:"admin_id,omitempty"`
	AdminExpires string `json:"admin_expires,omitempty"`
}

type InboundAccepted struct {
	Accepted bool `json:"accepted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
