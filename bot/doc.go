// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package bot orchestrates the duty cycle against the messaging channel.

A Bot owns the state, the duty engine, the snapshot store and the channel
collaborators. Inbound events and the daily timer are serialized under one
mutex, so handlers run to completion one at a time and the snapshot needs
no finer locking.

# Ordering guarantees

Every mutating handler follows commit-then-announce: the snapshot is saved
through the store before any outbound message is attempted. Notification
failures are logged and dropped; they never roll back state and are never
retried. A failed save is the one error surfaced to the chat, since the
action may not survive a restart.

# Command surface

Text messages are routed as commands, case-insensitive with an optional
"!" prefix:

	status            roster size, today's pick, active admin
	pick              manual pick; overwrites today's pick (last write wins)
	sync              additive roster sync from the configured group
	leaderboard       top 10 streaks, descending
	addmember <id> [name]
	sethour <0-23>    move the day boundary
	setchannel <target>
	approve|yes|ok    vote on the quoted announcement, or the newest
	reject|no|nope    submission of today's pick when nothing is quoted

Unknown text is ignored. Media messages become submissions.

# Daily trigger

RunDailyTrigger advances the cycle once at startup (recovering a boundary
crossed while the process was down) and then at every dayStartHour
boundary. Duplicate triggers are harmless: a day that already has a pick
is never redrawn.
*/
package bot
