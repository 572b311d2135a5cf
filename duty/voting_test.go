package duty

import (
	"errors"
	"testing"

	"github.com/dutybot/dutybot/models"
	"github.com/dutybot/dutybot/testutil"
)

func TestDecide_Determinism(t *testing.T) {
	tests := []struct {
		name       string
		approvals  int
		rejections int
		roster     int
		want       string
	}{
		{"two approvals decide with M=5", 2, 0, 5, models.OutcomeApproved},
		{"single approval decides alone", 1, 0, 5, models.OutcomeApproved},
		{"three rejections below quorum stay open", 0, 3, 5, models.OutcomeOpen},
		{"four rejections reach M-1 quorum", 0, 4, 5, models.OutcomeRejected},
		{"tie stays open", 2, 2, 5, models.OutcomeOpen},
		{"rejection quorum includes approvals", 1, 3, 5, models.OutcomeRejected},
		{"no votes stay open", 0, 0, 5, models.OutcomeOpen},
		{"roster of one: single rejection decides", 0, 1, 1, models.OutcomeRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.approvals, tt.rejections, tt.roster); got != tt.want {
				t.Errorf("Decide(%d, %d, %d) = %s, want %s",
					tt.approvals, tt.rejections, tt.roster, got, tt.want)
			}
		})
	}
}

func TestCastVote_ApprovalByPlurality(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c", "d", "e")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "b")
	sub := e.RecordSubmission("b", models.MediaVideo, testutil.At(0, 9)).Submission
	e.BindAnnouncement(sub.ID, "ann-1")

	res, err := e.CastVote("a", "ann-1", true, testutil.At(0, 10))
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if res.Effect == nil || !res.Effect.Approved {
		t.Fatalf("A=1 R=0 must approve immediately, got %+v", res)
	}
	if !sub.Finalized || sub.Outcome != models.OutcomeApproved {
		t.Errorf("submission not finalized approved: %+v", sub)
	}
}

func TestCastVote_RejectionNeedsQuorum(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c", "d", "e")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "a")
	sub := e.RecordSubmission("a", models.MediaVoice, testutil.At(0, 9)).Submission
	e.BindAnnouncement(sub.ID, "ann-1")

	voters := []string{"b", "c", "d", "e"}
	for i, v := range voters {
		res, err := e.CastVote(v, "ann-1", false, testutil.At(0, 10+i))
		if err != nil {
			t.Fatalf("vote %d: %v", i+1, err)
		}
		if i < 3 && res.Effect != nil {
			t.Fatalf("rejection decided after %d votes, quorum is M-1=4", i+1)
		}
		if i == 3 {
			if res.Effect == nil || res.Effect.Approved {
				t.Fatalf("4th rejection must decide rejected, got %+v", res)
			}
			if res.Effect.Admin == nil || res.Effect.Admin.MemberID != "e" {
				t.Errorf("decisive rejector should be the last caster e, got %+v", res.Effect.Admin)
			}
		}
	}
}

func TestCastVote_RevoteLastWins(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c", "d", "e")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "a")
	sub := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 9)).Submission
	e.BindAnnouncement(sub.ID, "ann-1")

	// b rejects, then changes their mind; only one entry may remain
	if _, err := e.CastVote("b", "ann-1", false, testutil.At(0, 10)); err != nil {
		t.Fatal(err)
	}
	res, err := e.CastVote("b", "ann-1", true, testutil.At(0, 11))
	if err != nil {
		t.Fatal(err)
	}
	if len(sub.Votes) != 1 {
		t.Fatalf("re-vote must overwrite, got %d entries", len(sub.Votes))
	}
	if res.Approvals != 1 || res.Rejections != 0 {
		t.Errorf("tallies after re-vote: A=%d R=%d", res.Approvals, res.Rejections)
	}
	// the flipped vote is now a plurality, so it decides
	if res.Effect == nil || !res.Effect.Approved {
		t.Errorf("expected approval after flip, got %+v", res.Effect)
	}
}

func TestCastVote_NoTargetAndFinalized(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c")
	e := NewEngine(st, &testutil.ScriptedRand{})

	if _, err := e.CastVote("b", "", true, testutil.At(0, 10)); !errors.Is(err, ErrNoVoteTarget) {
		t.Fatalf("expected ErrNoVoteTarget, got %v", err)
	}

	st.SetPick("2025-03-10", "a")
	sub := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 9)).Submission
	e.BindAnnouncement(sub.ID, "ann-1")
	if _, err := e.CastVote("b", "ann-1", true, testutil.At(0, 10)); err != nil {
		t.Fatal(err)
	}

	// finalized submissions accept no further votes
	outcome := sub.Outcome
	if _, err := e.CastVote("c", "ann-1", false, testutil.At(0, 11)); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("expected ErrAlreadyFinalized, got %v", err)
	}
	if sub.Outcome != outcome || len(sub.Votes) != 1 {
		t.Errorf("vote on finalized submission mutated it: %+v", sub)
	}
}

func TestCastVote_FallbackToLatestActive(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c", "d", "e")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "a")
	e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 8))
	second := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 9)).Submission

	// no quoted id: the newest submission of today's pick is the target
	res, err := e.CastVote("b", "", false, testutil.At(0, 10))
	if err != nil {
		t.Fatal(err)
	}
	if res.Submission.ID != second.ID {
		t.Errorf("fallback picked %s, want newest %s", res.Submission.ID, second.ID)
	}

	// an unmapped quote behaves like no quote at all
	res, err = e.CastVote("c", "not-an-announcement", false, testutil.At(0, 11))
	if err != nil {
		t.Fatal(err)
	}
	if res.Submission.ID != second.ID {
		t.Errorf("unmapped quote picked %s, want newest %s", res.Submission.ID, second.ID)
	}
}

func TestForceFinalize_ZeroVotesAndTies(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "a")

	zero := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 9)).Submission
	tied := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 10)).Submission
	e.BindAnnouncement(tied.ID, "ann-tied")
	if _, err := e.CastVote("c", "ann-tied", false, testutil.At(0, 11)); err != nil {
		t.Fatal(err)
	}
	if _, err := e.CastVote("b", "ann-tied", true, testutil.At(0, 12)); err != nil {
		t.Fatal(err) // A==R keeps the submission open
	}

	effZero := e.forceFinalize(zero, testutil.At(1, 5))
	if effZero == nil || effZero.Approved || zero.Outcome != models.OutcomeRejected {
		t.Errorf("zero-vote submission must force-reject, got %+v", zero)
	}
	if effZero.Admin != nil {
		t.Error("zero-vote rejection has no decisive rejector, must not assign admin")
	}

	effTied := e.forceFinalize(tied, testutil.At(1, 5))
	if effTied == nil || tied.Outcome != models.OutcomeRejected {
		t.Errorf("tie at forced finalization must resolve to rejected, got %+v", tied)
	}
	if effTied.Admin == nil || effTied.Admin.MemberID != "c" {
		t.Errorf("decisive rejector of the tie should be c, got %+v", effTied.Admin)
	}

	// force-finalizing again is a no-op: effects apply exactly once
	if again := e.forceFinalize(zero, testutil.At(1, 6)); again != nil {
		t.Errorf("second forced finalization must be nil, got %+v", again)
	}
}

func TestFinalize_OutcomeNeverChanges(t *testing.T) {
	st := testutil.NewTestState(t, 5, "a", "b", "c", "d", "e")
	e := NewEngine(st, &testutil.ScriptedRand{})
	st.SetPick("2025-03-10", "a")
	sub := e.RecordSubmission("a", models.MediaVideo, testutil.At(0, 9)).Submission
	e.BindAnnouncement(sub.ID, "ann-1")

	if _, err := e.CastVote("b", "ann-1", true, testutil.At(0, 10)); err != nil {
		t.Fatal(err)
	}
	if sub.Outcome != models.OutcomeApproved {
		t.Fatalf("setup: expected approval, got %s", sub.Outcome)
	}
	if eff := e.finalize(sub, models.OutcomeRejected, testutil.At(0, 11)); eff != nil {
		t.Errorf("finalize on a finalized submission returned %+v", eff)
	}
	if sub.Outcome != models.OutcomeApproved {
		t.Errorf("outcome changed after finalization: %s", sub.Outcome)
	}
}
