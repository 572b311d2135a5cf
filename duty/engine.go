// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package duty

import (
	"errors"

	"github.com/dutybot/dutybot/dayclock"
	"github.com/dutybot/dutybot/state"
)

var (
	ErrEmptyRoster      = errors.New("no members on the roster")
	ErrNoVoteTarget     = errors.New("no submission found to vote on")
	ErrAlreadyFinalized = errors.New("submission is already finalized")
)

// Intner is the injectable randomness source for pick draws. *math/rand.Rand
// satisfies it; tests supply scripted values.
type Intner interface {
	Intn(n int) int
}

// Engine applies state transitions for the duty cycle. It performs no I/O:
// callers persist the snapshot and deliver announcements after each
// operation returns.
type Engine struct {
	state *state.State
	rand  Intner
}

func NewEngine(st *state.State, rnd Intner) *Engine {
	return &Engine{state: st, rand: rnd}
}

// clock derives the day resolver from the current settings, so a sethour
// change takes effect on the next operation.
func (e *Engine) clock() dayclock.Clock {
	return dayclock.Clock{StartHour: e.state.Settings().DayStartHour}
}
