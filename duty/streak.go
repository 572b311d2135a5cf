// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package duty

import (
	"time"

	"github.com/dutybot/dutybot/dayclock"
	"github.com/dutybot/dutybot/models"
)

// OutcomeEffect reports what finalizing a submission changed, so the caller
// can announce it.
type OutcomeEffect struct {
	Submission   *models.Submission
	Approved     bool
	StreakLength int                     // new length, on approval
	Admin        *models.AdminAssignment // set when a decisive rejecting voter exists
}

// applyOutcome mutates streak and admin state for a freshly finalized
// submission. It runs at most once per submission, guarded by the
// finalized flag in finalize.
func (e *Engine) applyOutcome(sub *models.Submission, decision string, now time.Time) *OutcomeEffect {
	eff := &OutcomeEffect{Submission: sub}

	if decision == models.OutcomeApproved {
		eff.Approved = true
		prev := e.state.Streak(sub.AuthorID)
		var length int
		switch prev.LastCreditedDayKey {
		case sub.DayKey:
			// a second approval within the same day key never re-credits
			length = prev.CurrentLength
		case dayclock.PrevDay(sub.DayKey):
			length = prev.CurrentLength + 1
		default:
			length = 1
		}
		e.state.SetStreak(sub.AuthorID, models.Streak{
			CurrentLength:      length,
			LastCreditedDayKey: sub.DayKey,
		})
		eff.StreakLength = length
		return eff
	}

	// Rejection: zero the length, keep the last credited day for audit.
	st := e.state.Streak(sub.AuthorID)
	st.CurrentLength = 0
	e.state.SetStreak(sub.AuthorID, st)

	if voter, ok := decisiveRejector(sub); ok {
		eff.Admin = e.state.SetAdmin(voter, now.Add(models.AdminTenure))
	}
	return eff
}

// decisiveRejector returns the most recently cast rejecting vote's voter.
// Zero-vote forced rejections have none; the caller then announces the
// rejection without an admin handoff.
func decisiveRejector(sub *models.Submission) (string, bool) {
	for i := len(sub.Votes) - 1; i >= 0; i-- {
		if !sub.Votes[i].Approve {
			return sub.Votes[i].VoterID, true
		}
	}
	return "", false
}
