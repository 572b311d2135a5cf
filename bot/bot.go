// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/dutybot/dutybot/channel"
	"github.com/dutybot/dutybot/dayclock"
	"github.com/dutybot/dutybot/duty"
	"github.com/dutybot/dutybot/models"
	"github.com/dutybot/dutybot/state"
	"github.com/dutybot/dutybot/store"
)

// Bot wires the duty engine to storage and the messaging channel. Handlers
// run to completion under one mutex, which is the event-loop serialization
// the state machine assumes; state is persisted before any notification
// goes out, and a failed notification is logged, never retried, and never
// rolls anything back.
type Bot struct {
	mu     sync.Mutex
	st     *state.State
	engine *duty.Engine
	store  store.Store
	sender channel.Sender
	roster channel.Roster

	// Now is the time source; tests override it.
	Now func() time.Time
}

func New(st *state.State, str store.Store, sender channel.Sender, roster channel.Roster, rnd duty.Intner) *Bot {
	return &Bot{
		st:     st,
		engine: duty.NewEngine(st, rnd),
		store:  str,
		sender: sender,
		roster: roster,
		Now:    time.Now,
	}
}

// HandleMessage processes one normalized inbound event: media becomes a
// submission, text goes through the command surface.
func (b *Bot) HandleMessage(msg channel.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.Now()
	if msg.Media != "" {
		b.handleMedia(msg, now)
		return
	}
	b.handleText(msg, now)
}

func (b *Bot) handleMedia(msg channel.Message, now time.Time) {
	if msg.Media != models.MediaVideo && msg.Media != models.MediaVoice {
		slog.Info("ignoring unsupported media kind", "kind", msg.Media, "sender", msg.SenderID)
		return
	}

	res := b.engine.RecordSubmission(msg.SenderID, msg.Media, now)
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
		return
	}

	name := b.st.MemberName(msg.SenderID)
	if !res.OnCycle {
		slog.Info("off-cycle submission recorded", "author", msg.SenderID, "submission", res.Submission.ID)
		b.send(msg.ChatID, name+", it's not your day. Your recording was noted but won't be voted on.", nil)
		return
	}

	slog.Info("submission recorded", "author", msg.SenderID,
		"submission", res.Submission.ID, "kind", msg.Media, "day", res.Submission.DayKey)

	text := fmt.Sprintf("%s sent a %s recording. Reply approve or reject to vote!", name, msg.Media)
	annID, err := b.sender.Send(b.st.Settings().ChannelTarget, text, []string{msg.SenderID})
	if err != nil {
		// votes can still target it via the latest-active fallback
		slog.Warn("submission announcement failed", "submission", res.Submission.ID, "error", err)
		return
	}
	b.engine.BindAnnouncement(res.Submission.ID, annID)
	if err := b.persist(); err != nil {
		b.reportSaveFailure(msg.ChatID, err)
	}
}

// AdvanceCycle runs the daily rollover: finalize yesterday's leftovers,
// draw today's pick, announce both. Safe to call repeatedly; a duplicate
// trigger draws nothing.
func (b *Bot) AdvanceCycle() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.Now()
	res, err := b.engine.AdvanceCycle(now)
	if perr := b.persist(); perr != nil {
		b.reportSaveFailure(b.st.Settings().ChannelTarget, perr)
	}
	for _, eff := range res.Finalized {
		b.announceOutcome(eff, now)
	}

	if errors.Is(err, duty.ErrEmptyRoster) {
		slog.Warn("cycle skipped, roster is empty", "day", res.DayKey)
		return
	}
	if res.Repeated {
		slog.Info("duplicate cycle trigger ignored", "day", res.DayKey, "member", res.Member.ID)
		return
	}

	slog.Info("pick recorded", "day", res.DayKey, "member", res.Member.ID)
	b.announcePick(res)
}

// RunDailyTrigger advances the cycle once immediately (recovering a
// boundary missed while the process was down) and then at every
// dayStartHour boundary until ctx is done.
func (b *Bot) RunDailyTrigger(ctx context.Context) {
	b.AdvanceCycle()
	for {
		now := b.Now()
		_, end := b.dayWindow(now)
		timer := time.NewTimer(end.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			b.AdvanceCycle()
		}
	}
}

// Status reports the current cycle state for the HTTP surface.
func (b *Bot) Status() models.StatusResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.Now()
	dayKey := b.clockLocked().DayKey(now)
	resp := models.StatusResponse{
		RosterSize:  len(b.st.Members()),
		TodayDayKey: dayKey,
	}
	if p := b.st.Pick(dayKey); p != nil {
		resp.PickMemberID = p.MemberID
		resp.PickName = b.st.MemberName(p.MemberID)
	}
	if a := b.st.ActiveAdmin(now); a != nil {
		resp.AdminID = a.MemberID
		resp.AdminExpires = a.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func (b *Bot) announcePick(res *duty.PickResult) {
	direct := "You're today's pick! Send your video or voice recording before the day rolls over."
	if _, err := b.sender.Send(res.Member.ID, direct, nil); err != nil {
		// degrade to broadcast-only; the cycle itself already committed
		slog.Warn("direct pick notification failed", "member", res.Member.ID, "error", err)
	}
	text := fmt.Sprintf("Today's pick is %s!", res.Member.DisplayName)
	b.send(b.st.Settings().ChannelTarget, text, []string{res.Member.ID})
}

func (b *Bot) announceOutcome(eff *duty.OutcomeEffect, now time.Time) {
	target := b.st.Settings().ChannelTarget
	name := b.st.MemberName(eff.Submission.AuthorID)

	if eff.Approved {
		text := fmt.Sprintf("Approved! %s delivered for the %s day in a row.",
			name, humanize.Ordinal(eff.StreakLength))
		b.send(target, text, []string{eff.Submission.AuthorID})
		return
	}

	if eff.Admin == nil {
		b.send(target, fmt.Sprintf("%s's recording was rejected. The streak is over.", name),
			[]string{eff.Submission.AuthorID})
		return
	}
	adminName := b.st.MemberName(eff.Admin.MemberID)
	text := fmt.Sprintf("%s's recording was rejected and the streak is over. %s cast the deciding vote and is group admin until %s.",
		name, adminName, humanize.RelTime(eff.Admin.ExpiresAt, now, "ago", "from now"))
	b.send(target, text, []string{eff.Submission.AuthorID, eff.Admin.MemberID})
}

// send delivers best-effort: failures are logged and dropped, state has
// already been committed by the caller.
func (b *Bot) send(target, text string, mentions []string) {
	if _, err := b.sender.Send(target, text, mentions); err != nil {
		slog.Warn("notification delivery failed", "target", target, "error", err)
	}
}

func (b *Bot) persist() error {
	if err := b.store.Save(b.st.Snapshot()); err != nil {
		slog.Error("snapshot save failed", "error", err)
		return err
	}
	return nil
}

func (b *Bot) reportSaveFailure(target string, err error) {
	b.send(target, "Warning: the last action may not have been saved: "+err.Error(), nil)
}

func (b *Bot) clockLocked() dayclock.Clock {
	return dayclock.Clock{StartHour: b.st.Settings().DayStartHour}
}

func (b *Bot) dayWindow(now time.Time) (time.Time, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clockLocked().DayWindow(now)
}
