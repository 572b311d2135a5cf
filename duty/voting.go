// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package duty

import (
	"time"

	"github.com/dutybot/dutybot/models"
)

// VoteResult reports the tallies after a vote and, when the vote was
// decisive, the finalization effect.
type VoteResult struct {
	Submission *models.Submission
	Approvals  int
	Rejections int
	Effect     *OutcomeEffect // non-nil when this vote finalized the submission
}

// CastVote records voterID's verdict on a submission. The target is the
// submission behind the quoted announcement id when one is given; otherwise
// (or when the quote doesn't map to an announcement, e.g. a reply to some
// other bot message) the newest submission bound to today's pick. Returns
// ErrNoVoteTarget when nothing resolves and ErrAlreadyFinalized when the
// target is closed; neither mutates state.
func (e *Engine) CastVote(voterID, quotedMessageID string, approve bool, now time.Time) (*VoteResult, error) {
	var sub *models.Submission
	if quotedMessageID != "" {
		sub = e.state.SubmissionByAnnouncement(quotedMessageID)
	}
	if sub == nil {
		sub = e.state.LatestSubmission(e.clock().DayKey(now))
	}
	if sub == nil {
		return nil, ErrNoVoteTarget
	}
	if sub.Finalized {
		return nil, ErrAlreadyFinalized
	}

	upsertVote(sub, voterID, approve, now)

	a, r := tally(sub)
	res := &VoteResult{Submission: sub, Approvals: a, Rejections: r}
	if decision := Decide(a, r, len(e.state.Members())); decision != models.OutcomeOpen {
		res.Effect = e.finalize(sub, decision, now)
	}
	return res, nil
}

// upsertVote keeps one entry per voter. A re-vote removes the old entry and
// appends, so the slice stays ordered by most recent cast.
func upsertVote(sub *models.Submission, voterID string, approve bool, now time.Time) {
	for i, v := range sub.Votes {
		if v.VoterID == voterID {
			sub.Votes = append(sub.Votes[:i], sub.Votes[i+1:]...)
			break
		}
	}
	sub.Votes = append(sub.Votes, models.Vote{VoterID: voterID, Approve: approve, CastAt: now})
}

func tally(sub *models.Submission) (approvals, rejections int) {
	for _, v := range sub.Votes {
		if v.Approve {
			approvals++
		} else {
			rejections++
		}
	}
	return approvals, rejections
}

// Decide applies the decision rule to the current tallies. Approval takes a
// simple plurality; rejection needs near-consensus (a quorum of rosterSize-1
// ballots) so a lone detractor cannot break a streak on their own. The rule
// is recomputed from tallies every time, never kept as incremental state.
func Decide(approvals, rejections, rosterSize int) string {
	switch {
	case approvals > rejections:
		return models.OutcomeApproved
	case rejections > approvals && approvals+rejections >= max(1, rosterSize-1):
		return models.OutcomeRejected
	default:
		return models.OutcomeOpen
	}
}

// forceFinalize closes a submission left open past its day window.
// Zero-vote submissions are rejected outright; anything with votes goes
// through the normal decision rule, and a still-open result there (a tie,
// or votes short of the rejection quorum) resolves to rejected: a pick that
// could not gather an approving plurality in its own window earns no credit.
func (e *Engine) forceFinalize(sub *models.Submission, now time.Time) *OutcomeEffect {
	a, r := tally(sub)
	decision := models.OutcomeRejected
	if a+r > 0 {
		if d := Decide(a, r, len(e.state.Members())); d != models.OutcomeOpen {
			decision = d
		}
	}
	return e.finalize(sub, decision, now)
}

// finalize flips the single-shot finalized flag and applies streak/admin
// effects exactly once. Calling it on a finalized submission is a no-op.
func (e *Engine) finalize(sub *models.Submission, decision string, now time.Time) *OutcomeEffect {
	if sub.Finalized {
		return nil
	}
	sub.Finalized = true
	sub.Outcome = decision
	return e.applyOutcome(sub, decision, now)
}
