// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package duty

import (
	"time"

	"github.com/google/uuid"

	"github.com/dutybot/dutybot/models"
)

// SubmissionResult reports a recorded submission and how it was bound.
type SubmissionResult struct {
	Submission *models.Submission
	OnCycle    bool
	ModeSet    bool // this submission fixed the pick's recording mode
}

// RecordSubmission stores a new submission and binds it to the active pick
// when the author is the day's pick member. Anything else is kept with an
// off-cycle note for audit and never enters voting.
func (e *Engine) RecordSubmission(authorID, mediaKind string, now time.Time) *SubmissionResult {
	key := e.clock().DayKey(now)
	sub := &models.Submission{
		ID:        newSubmissionID(),
		AuthorID:  authorID,
		MediaKind: mediaKind,
		CreatedAt: now,
		DayKey:    key,
		Outcome:   models.OutcomeOpen,
	}
	res := &SubmissionResult{Submission: sub}

	p := e.state.Pick(key)
	if p != nil && p.MemberID == authorID {
		res.OnCycle = true
		if p.RecordingMode == models.ModeUnset {
			e.state.SetRecordingMode(key, mediaKind)
			res.ModeSet = true
		}
		e.state.AddSubmission(sub)
		e.state.AppendToPick(key, sub.ID)
		return res
	}

	sub.Note = models.NoteOffCycle
	e.state.AddSubmission(sub)
	return res
}

// BindAnnouncement records the announcement id the channel returned for a
// submission's announcement, enabling vote-reply resolution. Off-cycle
// submissions are never registered, which keeps them out of voting.
func (e *Engine) BindAnnouncement(submissionID, announcementID string) {
	sub := e.state.Submission(submissionID)
	if sub == nil || sub.Note == models.NoteOffCycle {
		return
	}
	e.state.BindAnnouncement(announcementID, submissionID)
}

// newSubmissionID returns a fresh id that sorts by creation time (UUIDv7).
func newSubmissionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
