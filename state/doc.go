// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package state owns the in-memory snapshot and every accessor that mutates
it.

The whole system's data lives in a single models.Snapshot. Handlers run to
completion one at a time (the bot serializes them), so the snapshot needs no
internal locking; this package only guarantees that all reads and writes go
through named operations, never through ambient globals.

# Roster operations

	UpsertMember(id, name)  // add or rename, never removes
	SyncMembers(ids)        // additive-only external sync
	Members()               // sorted snapshot of the roster

# Pick, submission and vote bookkeeping

Picks are keyed by day key with at most one entry per key. Submissions are
kept forever, including off-cycle ones. The Announcements table maps
outbound announcement ids back to submission ids so a quoted reply can be
resolved without scanning.

# Streaks and the admin singleton

Streak returns a zero value for unknown members; SetAdmin always replaces
the previous assignment and ActiveAdmin applies lazy expiry.
*/
package state
