// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the persisted domain types and HTTP response types.

# Domain Types

The entities that make up the snapshot:

  - Member: roster entry (opaque chat id + display name)
  - Settings: day-start hour, channel target, optional group id
  - Pick: the on-duty assignment for one day key
  - Submission: a media submission with its ordered vote list
  - Vote: one voter's verdict, in cast order
  - Streak: consecutive credited days per member
  - AdminAssignment: the singleton time-boxed admin label
  - Snapshot: the single JSON document holding all of the above

# Constants

Media kinds and recording modes:

	MediaVideo = "video"
	MediaVoice = "voice"
	ModeUnset  = ""

Submission outcomes:

	OutcomeOpen     = "open"
	OutcomeApproved = "approved"
	OutcomeRejected = "rejected"

# Invariants encoded here

A Submission's Votes slice holds at most one entry per voter; re-voting
removes the old entry and appends, so cast order is preserved and the
decisive rejecting voter is the last entry with Approve=false. A Snapshot's
Picks map holds at most one Pick per day key.
*/
package models
