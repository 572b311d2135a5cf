// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package duty

import (
	"time"

	"github.com/dutybot/dutybot/dayclock"
	"github.com/dutybot/dutybot/models"
)

// PickResult reports a cycle advancement: the day's pick plus whatever the
// rollover force-finalized from the previous day.
type PickResult struct {
	DayKey    string
	Member    models.Member
	Repeated  bool // a pick already existed for the day key (duplicate trigger)
	Finalized []*OutcomeEffect
}

// AdvanceCycle runs the daily rollover: force-finalize the previous day's
// open submissions, then draw today's pick uniformly at random. A duplicate
// trigger for a day that already has a pick is a no-op draw, never an
// overwrite. Returns ErrEmptyRoster when there is nobody to draw from; any
// finalizations already applied are still reported in the result.
func (e *Engine) AdvanceCycle(now time.Time) (*PickResult, error) {
	today := e.clock().DayKey(now)
	res := &PickResult{DayKey: today}

	if prev := e.state.Pick(dayclock.PrevDay(today)); prev != nil {
		for _, id := range prev.SubmissionIDs {
			sub := e.state.Submission(id)
			if sub == nil || sub.Finalized {
				continue
			}
			if eff := e.forceFinalize(sub, now); eff != nil {
				res.Finalized = append(res.Finalized, eff)
			}
		}
	}

	if p := e.state.Pick(today); p != nil {
		res.Repeated = true
		res.Member = models.Member{ID: p.MemberID, DisplayName: e.state.MemberName(p.MemberID)}
		return res, nil
	}

	members := e.state.Members()
	if len(members) == 0 {
		return res, ErrEmptyRoster
	}
	res.Member = members[e.rand.Intn(len(members))]
	e.state.SetPick(today, res.Member.ID)
	return res, nil
}

// ManualPick draws and records today's pick without touching the previous
// day. It overwrites any existing pick for the day: last write wins, and
// submissions bound to the replaced pick stay in the ledger for audit only.
func (e *Engine) ManualPick(now time.Time) (*PickResult, error) {
	today := e.clock().DayKey(now)
	members := e.state.Members()
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}
	m := members[e.rand.Intn(len(members))]
	e.state.SetPick(today, m.ID)
	return &PickResult{DayKey: today, Member: m}, nil
}
