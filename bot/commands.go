// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dutybot/dutybot/channel"
	"github.com/dutybot/dutybot/duty"
)

// voteAliases maps command words to a verdict.
var voteAliases = map[string]bool{
	"approve": true,
	"yes":     true,
	"ok":      true,
	"reject":  false,
	"no":      false,
	"nope":    false,
}

// handleText routes operator commands. Commands are case-insensitive and
// tolerate a leading "!"; unknown text is ignored so ordinary group chatter
// never produces bot noise.
func (b *Bot) handleText(msg channel.Message, now time.Time) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], "!"))

	if approve, ok := voteAliases[cmd]; ok {
		b.castVote(msg, approve, now)
		return
	}

	switch cmd {
	case "status":
		b.cmdStatus(msg, now)
	case "pick":
		b.cmdPick(msg, now)
	case "sync":
		b.cmdSync(msg)
	case "leaderboard":
		b.cmdLeaderboard(msg)
	case "addmember":
		b.cmdAddMember(msg, fields)
	case "sethour":
		b.cmdSetHour(msg, fields)
	case "setchannel":
		b.cmdSetChannel(msg, fields)
	}
}

func (b *Bot) castVote(msg channel.Message, approve bool, now time.Time) {
	res, err := b.engine.CastVote(msg.SenderID, msg.QuotedMessageID, approve, now)
	if errors.Is(err, duty.ErrNoVoteTarget) {
		b.send(msg.ChatID, "No submission found to vote on.", nil)
		return
	}
	if errors.Is(err, duty.ErrAlreadyFinalized) {
		b.send(msg.ChatID, "Voting on that submission is already closed.", nil)
		return
	}

	slog.Info("vote cast", "voter", msg.SenderID, "submission", res.Submission.ID,
		"approve", approve, "tally", fmt.Sprintf("%d/%d", res.Approvals, res.Rejections))

	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	if res.Effect != nil {
		b.announceOutcome(res.Effect, now)
	}
}

func (b *Bot) cmdStatus(msg channel.Message, now time.Time) {
	dayKey := b.clockLocked().DayKey(now)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Roster: %d member(s)\n", len(b.st.Members()))
	if p := b.st.Pick(dayKey); p != nil {
		fmt.Fprintf(&sb, "Today (%s): %s is on duty", dayKey, b.st.MemberName(p.MemberID))
		if p.RecordingMode != "" {
			fmt.Fprintf(&sb, " (%s)", p.RecordingMode)
		}
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "Today (%s): nobody picked yet\n", dayKey)
	}
	if a := b.st.ActiveAdmin(now); a != nil {
		fmt.Fprintf(&sb, "Admin: %s (expires %s)", b.st.MemberName(a.MemberID),
			humanize.RelTime(a.ExpiresAt, now, "ago", "from now"))
	} else {
		sb.WriteString("Admin: none")
	}
	b.send(msg.ChatID, sb.String(), nil)
}

func (b *Bot) cmdPick(msg channel.Message, now time.Time) {
	res, err := b.engine.ManualPick(now)
	if errors.Is(err, duty.ErrEmptyRoster) {
		b.send(msg.ChatID, "The roster is empty. Add members before picking.", nil)
		return
	}
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	slog.Info("manual pick", "day", res.DayKey, "member", res.Member.ID, "by", msg.SenderID)
	b.announcePick(res)
}

func (b *Bot) cmdSync(msg channel.Message) {
	groupID := b.st.Settings().GroupID
	if groupID == "" {
		b.send(msg.ChatID, "No group configured for roster sync.", nil)
		return
	}
	ids, err := b.roster.FetchGroupMembers(groupID)
	if err != nil {
		slog.Warn("roster sync failed", "group", groupID, "error", err)
		b.send(msg.ChatID, "Roster sync failed, try again later.", nil)
		return
	}
	added := b.st.SyncMembers(ids)
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	b.send(msg.ChatID, fmt.Sprintf("Roster synced: %d new, %d total.", added, len(b.st.Members())), nil)
}

func (b *Bot) cmdLeaderboard(msg channel.Message) {
	top := b.st.TopStreaks(10)
	if len(top) == 0 {
		b.send(msg.ChatID, "No streaks yet.", nil)
		return
	}
	var sb strings.Builder
	sb.WriteString("Streak leaderboard:\n")
	for i, entry := range top {
		fmt.Fprintf(&sb, "%d. %s: %d day(s)\n", i+1, entry.Member.DisplayName, entry.Streak.CurrentLength)
	}
	b.send(msg.ChatID, strings.TrimRight(sb.String(), "\n"), nil)
}

func (b *Bot) cmdAddMember(msg channel.Message, fields []string) {
	if len(fields) < 2 {
		b.send(msg.ChatID, "Usage: addmember <id> [name]", nil)
		return
	}
	id := fields[1]
	name := strings.Join(fields[2:], " ")
	b.st.UpsertMember(id, name)
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	b.send(msg.ChatID, fmt.Sprintf("Added %s.", b.st.MemberName(id)), nil)
}

func (b *Bot) cmdSetHour(msg channel.Message, fields []string) {
	if len(fields) != 2 {
		b.send(msg.ChatID, "Usage: sethour <0-23>", nil)
		return
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil || h < 0 || h > 23 {
		b.send(msg.ChatID, "Day start hour must be between 0 and 23.", nil)
		return
	}
	b.st.SetDayStartHour(h)
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	b.send(msg.ChatID, fmt.Sprintf("Day now starts at %02d:00.", h), nil)
}

func (b *Bot) cmdSetChannel(msg channel.Message, fields []string) {
	if len(fields) != 2 {
		b.send(msg.ChatID, "Usage: setchannel <target>", nil)
		return
	}
	b.st.SetChannelTarget(fields[1])
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}
	b.send(msg.ChatID, "Announcement channel updated.", nil)
}
