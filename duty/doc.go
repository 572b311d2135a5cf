// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package duty implements the daily-cycle state machine: pick rotation,
submission bookkeeping, vote tallying and streak/admin effects.

Everything runs through an Engine bound to a state.State. The engine does
no I/O of its own, so every transition is a plain function of (state,
inputs, clock, randomness) and is directly testable. Callers
persist the snapshot and deliver announcements from the returned result
structs.

# Cycle

	AdvanceCycle(now)  // rollover: finalize yesterday, draw today's pick
	ManualPick(now)    // draw only; overwrites the day's pick, last write wins

A duplicate AdvanceCycle for a day that already has a pick reports
Repeated=true and draws nothing, so a double-fired timer is harmless.

# Submissions

	RecordSubmission(author, kind, now)      // binds on-cycle, notes off-cycle
	BindAnnouncement(submissionID, announcementID)

Submission ids are UUIDv7, so they order by creation time. The first
on-cycle submission of the day fixes the pick's recording mode.

# Voting

	CastVote(voter, quotedMessageID, approve, now)

The decision rule is recomputed from tallies after every vote:

	A > R                                → approved
	R > A and A+R >= max(1, M-1)         → rejected
	otherwise                            → open

where M is the current roster size. Approval takes a simple plurality;
rejection needs near-consensus. Day rollover force-finalizes leftovers:
zero votes reject outright, and a tie (or a rejection short of quorum)
resolves to rejected.

# Streaks and the admin handoff

Approval credits the author's streak: +1 when the previous credit was
exactly the prior calendar day, otherwise a reset to 1; a second approval
inside one day key never re-credits. Rejection zeroes the streak and hands
the time-boxed admin label to the decisive rejecting voter (the most
recently cast rejecting vote), replacing any prior assignment.
*/
package duty
